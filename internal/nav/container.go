package nav

// Host is the surface a Manager mounts into. The embedding Bubble Tea
// model implements it; tests use a fixed-size fake.
type Host interface {
	// Size reports the current surface dimensions in terminal cells.
	Size() (width, height int)
}

// Container is the handle returned by Mount. It ties one Manager to one
// host surface; rendering goes through it.
type Container struct {
	// ID is unique per mount, for hosts that juggle several components.
	ID string

	host Host
	mgr  *Manager
}

// View renders the tab bar for the container's manager.
func (c *Container) View() string {
	if c == nil || c.mgr == nil {
		return ""
	}
	return c.mgr.View()
}

// Size reports the host surface dimensions.
func (c *Container) Size() (int, int) {
	if c == nil || c.host == nil {
		return 0, 0
	}
	return c.host.Size()
}
