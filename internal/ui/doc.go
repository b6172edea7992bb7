// Package ui assembles the tabdeck terminal interface with Bubble Tea.
//
// Core abstractions:
//   - AppModel: root model composing the tab bar, page viewport, status line and footer
//   - KeybindRegistry / KeyHandler: leader-key (SPC) command sequences
//   - busBridge: forwards dispatcher events into the Bubble Tea message loop
//   - pageCache: glamour-rendered markdown per tab, memoized until theme or width change
//
// AppModel itself is not a tea.Model; call AsTeaModel for the adapter to
// hand to tea.NewProgram.
package ui
