package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"tabdeck/internal/event"
)

// busMsg delivers one bus event into the Elm update loop.
type busMsg struct {
	Event event.Event
}

// busBridge forwards bus events onto a channel the program drains one
// message at a time via wait. Publishers may run on any goroutine (the
// config watcher's debounce timer, for instance); the bridge is how their
// events reach Update without touching the model concurrently.
type busBridge struct {
	ch   chan tea.Msg
	subs []*event.Subscription
}

func newBusBridge(bus event.Bus, topics ...string) *busBridge {
	b := &busBridge{ch: make(chan tea.Msg, 64)}
	for _, topic := range topics {
		b.subs = append(b.subs, bus.Subscribe(topic, b.forward))
	}
	return b
}

// forward sends the event to the channel (non-blocking; drops if full).
func (b *busBridge) forward(ev event.Event) {
	select {
	case b.ch <- busMsg{Event: ev}:
	default:
		// Channel full; drop to avoid blocking the publisher
	}
}

// wait returns a command that blocks until the next bus event arrives.
// Update must re-issue it after every delivery to keep draining.
func (b *busBridge) wait() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-b.ch
		if !ok {
			return nil
		}
		return msg
	}
}

// close cancels the bridge's subscriptions. The channel stays open so an
// in-flight wait returns rather than panicking.
func (b *busBridge) close() {
	for _, s := range b.subs {
		s.Cancel()
	}
}
