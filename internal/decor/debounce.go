package decor

import (
	"sync"
	"time"

	"github.com/dshills/orgbullets/internal/host"
)

// debouncer coalesces bursts of change events: events queue for one
// interval, then a single flush drains them in arrival order. A zero
// interval applies events synchronously. Decoration is therefore
// eventually consistent with the buffer; callers that need to observe
// settled state call flush first.
type debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	apply    func(host.Change)
	pending  []host.Change
	timer    *time.Timer
	stopped  bool
}

func newDebouncer(apply func(host.Change), interval time.Duration) *debouncer {
	return &debouncer{interval: interval, apply: apply}
}

func (d *debouncer) add(c host.Change) {
	if d.interval == 0 {
		d.apply(c)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending = append(d.pending, c)
	if d.timer == nil {
		d.timer = time.AfterFunc(d.interval, d.flush)
	}
}

// flush applies all pending events in arrival order.
func (d *debouncer) flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()

	for _, c := range pending {
		d.apply(c)
	}
}

// stop flushes pending work and refuses further events.
func (d *debouncer) stop() {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
	d.flush()
}

// pendingCount reports queued, not-yet-applied events.
func (d *debouncer) pendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
