package nav

// TabSpec describes a tab to register. ID must be unique within a Manager;
// an empty Label falls back to the ID.
type TabSpec struct {
	ID      string
	Label   string
	Content string
	Badge   string
}

// Tab is the stored record for a registered tab. The Manager owns it;
// mutate through Manager methods only.
type Tab struct {
	ID      string
	Label   string
	Content string
	Badge   string
}

// Snapshot is a read-only copy of the observable navigation state.
// ActiveTab is empty until the first activation. Badges has one key per
// registered tab, including tabs whose badge is empty.
type Snapshot struct {
	ActiveTab string
	Badges    map[string]string
	Collapsed bool
	Width     int
}
