package nav

// Topics the Manager publishes on its bus, plus TopicResize which the host
// publishes and the Manager consumes while mounted.
const (
	TopicTabAdded      = "nav.tab_added"
	TopicActivated     = "nav.activated"
	TopicBadgeUpdated  = "nav.badge_updated"
	TopicLayoutChanged = "nav.layout_changed"
	TopicResize        = "nav.resize"
)

// TabAdded is the TopicTabAdded payload.
type TabAdded struct {
	TabID string
	Index int
}

// Activated is the TopicActivated payload. PrevID is empty for the first
// activation.
type Activated struct {
	TabID  string
	PrevID string
}

// BadgeUpdated is the TopicBadgeUpdated payload. Value is empty when the
// badge was cleared.
type BadgeUpdated struct {
	TabID string
	Value string
}

// LayoutChanged is the TopicLayoutChanged payload, published when the
// presentation crosses the width breakpoint.
type LayoutChanged struct {
	Mode  Mode
	Width int
}

// Resize is the TopicResize payload. Hosts publish it when their surface
// changes size.
type Resize struct {
	Width  int
	Height int
}
