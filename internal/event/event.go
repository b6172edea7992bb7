// Package event provides the in-process publish/subscribe dispatcher that
// connects the navigation component to its host application. Subscribers get
// a handle they can cancel at any time, including from inside a handler
// while a publish is in flight.
package event

import (
	"sync"
	"time"
)

// Event carries one notification through the bus.
type Event struct {
	Topic   string
	Payload any
	Time    time.Time
}

// Handler receives events published on a subscribed topic.
type Handler func(Event)

// Bus is the dispatcher surface components depend on. Production code uses
// *Dispatcher; tests and the check harness use *Recorder.
type Bus interface {
	Subscribe(topic string, h Handler) *Subscription
	Publish(topic string, payload any)
}

// Dispatcher is the in-memory Bus. Safe for use from multiple goroutines;
// handlers run synchronously on the publishing goroutine, in subscription
// order per topic.
type Dispatcher struct {
	mu   sync.RWMutex
	subs map[string][]*Subscription
}

var _ Bus = (*Dispatcher)(nil)

func NewDispatcher() *Dispatcher {
	return &Dispatcher{subs: make(map[string][]*Subscription)}
}

// Subscribe registers h for topic and returns its handle. A nil handler
// yields an already-cancelled handle and is never invoked.
func (d *Dispatcher) Subscribe(topic string, h Handler) *Subscription {
	sub := &Subscription{topic: topic, handler: h, bus: d}
	if h == nil {
		sub.canceled.Store(true)
		return sub
	}
	d.mu.Lock()
	d.subs[topic] = append(d.subs[topic], sub)
	d.mu.Unlock()
	return sub
}

// Publish delivers payload to every live subscriber of topic. Delivery
// iterates a snapshot of the subscriber list, so a handler may cancel any
// subscription (its own included) without skipping or re-running the
// remaining handlers of the same publish. Handlers run outside the
// dispatcher lock, so publishing from inside a handler is fine.
func (d *Dispatcher) Publish(topic string, payload any) {
	d.mu.RLock()
	snapshot := make([]*Subscription, len(d.subs[topic]))
	copy(snapshot, d.subs[topic])
	d.mu.RUnlock()

	ev := Event{Topic: topic, Payload: payload, Time: time.Now()}
	for _, sub := range snapshot {
		if sub.canceled.Load() {
			continue
		}
		sub.handler(ev)
	}
}

// SubscriberCount reports the number of live subscriptions for topic.
func (d *Dispatcher) SubscriberCount(topic string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subs[topic])
}

func (d *Dispatcher) remove(sub *Subscription) {
	d.mu.Lock()
	defer d.mu.Unlock()
	list := d.subs[sub.topic]
	for i, s := range list {
		if s == sub {
			d.subs[sub.topic] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(d.subs[sub.topic]) == 0 {
		delete(d.subs, sub.topic)
	}
}
