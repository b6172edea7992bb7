// Package telemetry records how long each tab stays active. The Recorder
// listens for activation events on the bus and turns consecutive activations
// into Visits; a visit closes the moment the next one opens. Completed visits
// feed an optional OTLP exporter, so the whole package is inert unless
// OTEL_EXPORTER_OTLP_ENDPOINT is set.
package telemetry

import (
	"context"
	"sync"
	"time"

	"tabdeck/internal/event"
	"tabdeck/internal/nav"
)

// DefaultMaxVisits bounds the in-memory ring when no limit is configured.
const DefaultMaxVisits = 50

// Visit is one stay on a tab. End is zero while the tab is still current.
type Visit struct {
	TabID string
	Start time.Time
	End   time.Time
}

// Open reports whether the visit is still in progress.
func (v Visit) Open() bool { return v.End.IsZero() }

// Duration returns how long the visit lasted, or 0 while it is open.
func (v Visit) Duration() time.Duration {
	if v.End.IsZero() {
		return 0
	}
	return v.End.Sub(v.Start)
}

// Recorder accumulates visits from activation events. All methods are safe
// for concurrent use; the onChange callback runs on the publishing goroutine.
type Recorder struct {
	mu        sync.RWMutex
	current   *Visit
	recent    []Visit
	maxVisits int
	onChange  func()
	exporter  *OTLPExporter
	sub       *event.Subscription
	closed    bool
}

// NewRecorder subscribes to activation events on bus. maxVisits bounds the
// ring of completed visits (DefaultMaxVisits when non-positive). exporter may
// be nil, in which case visits stay local.
func NewRecorder(bus event.Bus, maxVisits int, exporter *OTLPExporter) *Recorder {
	if maxVisits <= 0 {
		maxVisits = DefaultMaxVisits
	}
	r := &Recorder{
		recent:    make([]Visit, 0, maxVisits),
		maxVisits: maxVisits,
		exporter:  exporter,
	}
	r.sub = bus.Subscribe(nav.TopicActivated, r.onActivated)
	return r
}

func (r *Recorder) onActivated(ev event.Event) {
	p, ok := ev.Payload.(nav.Activated)
	if !ok {
		return
	}
	r.record(p.TabID, ev.Time)
}

func (r *Recorder) record(tabID string, at time.Time) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	var done *Visit
	if r.current != nil {
		r.current.End = at
		r.push(*r.current)
		done = r.current
	}
	r.current = &Visit{TabID: tabID, Start: at}
	exporter := r.exporter
	fn := r.onChange
	r.mu.Unlock()

	if done != nil {
		_ = exporter.ExportVisit(context.Background(), *done)
	}
	if fn != nil {
		fn()
	}
}

// push appends a completed visit, evicting the oldest when the ring is full.
// Must be called with r.mu held.
func (r *Recorder) push(v Visit) {
	r.recent = append(r.recent, v)
	if len(r.recent) > r.maxVisits {
		r.recent = r.recent[1:]
	}
}

// Current returns the open visit, if any.
func (r *Recorder) Current() (Visit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return Visit{}, false
	}
	return *r.current, true
}

// Recent returns completed visits, newest first.
func (r *Recorder) Recent() []Visit {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Visit, 0, len(r.recent))
	for i := len(r.recent) - 1; i >= 0; i-- {
		out = append(out, r.recent[i])
	}
	return out
}

// SetOnChange sets a callback invoked after each recorded visit.
func (r *Recorder) SetOnChange(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

// Close finishes the open visit, exports it, cancels the bus subscription,
// and shuts the exporter down. Safe to call more than once.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	var done *Visit
	if r.current != nil {
		r.current.End = time.Now()
		r.push(*r.current)
		done = r.current
		r.current = nil
	}
	exporter := r.exporter
	sub := r.sub
	r.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
	if done != nil {
		_ = exporter.ExportVisit(ctx, *done)
	}
	return exporter.Shutdown(ctx)
}
