package event

import (
	"sync"
	"time"
)

// Recorder is a Bus that records every published event in order before
// forwarding it to subscribers. Tests and the tabcheck harness assert on
// the recording.
type Recorder struct {
	*Dispatcher
	mu     sync.Mutex
	events []Event
}

var _ Bus = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{Dispatcher: NewDispatcher()}
}

// Publish records the event, then delivers it like Dispatcher.Publish.
func (r *Recorder) Publish(topic string, payload any) {
	r.mu.Lock()
	r.events = append(r.events, Event{Topic: topic, Payload: payload, Time: time.Now()})
	r.mu.Unlock()
	r.Dispatcher.Publish(topic, payload)
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// EventsFor returns the recorded events for one topic, in publish order.
func (r *Recorder) EventsFor(topic string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, ev := range r.events {
		if ev.Topic == topic {
			out = append(out, ev)
		}
	}
	return out
}

// Topics returns the topic of each recorded event, in publish order.
func (r *Recorder) Topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Topic
	}
	return out
}

// Last returns the most recently recorded event, if any.
func (r *Recorder) Last() (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return Event{}, false
	}
	return r.events[len(r.events)-1], true
}

// Reset discards the recording. Subscriptions are unaffected.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
