package event

import "sync/atomic"

// Subscription is the handle returned by Subscribe. Cancelling detaches the
// handler; the zero of everything else stays valid, so holding a cancelled
// handle is harmless.
type Subscription struct {
	topic    string
	handler  Handler
	bus      *Dispatcher
	canceled atomic.Bool
}

// Topic reports the topic this subscription was registered for.
func (s *Subscription) Topic() string { return s.topic }

// Canceled reports whether Cancel has been called.
func (s *Subscription) Canceled() bool { return s.canceled.Load() }

// Cancel detaches the handler. Idempotent, and safe to call from inside the
// handler itself during dispatch: an in-flight publish checks the cancelled
// flag before each delivery.
func (s *Subscription) Cancel() {
	if !s.canceled.CompareAndSwap(false, true) {
		return
	}
	if s.bus != nil {
		s.bus.remove(s)
	}
}
