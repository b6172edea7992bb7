// Package nav implements the tabbed navigation component for terminal
// admin panels.
//
// Core pieces:
//   - Manager: tab registry, active pointer, badges, responsive layout
//   - Container/Host: the mount contract toward the embedding app
//   - KeyMap + HandleKey: wrap-around keyboard traversal
//   - Styles + View: lipgloss rendering in full and compact modes
//
// The Manager publishes its transitions on an event.Bus and consumes
// TopicResize from it while mounted. It is single-goroutine: drive it from
// the host's update loop.
package nav
