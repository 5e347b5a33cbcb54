package listsync

import (
	"sync"
	"time"
)

// Debouncer collapses bursts of Trigger calls into a single trailing
// callback. A burst that keeps re-triggering still fires at least once
// per maxWait window.
type Debouncer struct {
	delay   time.Duration
	maxWait time.Duration
	fn      func()

	mu       sync.Mutex
	timer    *time.Timer
	deadline time.Time
	stopped  bool
}

func NewDebouncer(delay, maxWait time.Duration, fn func()) *Debouncer {
	if delay <= 0 {
		delay = 250 * time.Millisecond
	}
	if maxWait <= 0 {
		maxWait = 600 * time.Millisecond
	}
	// maxWait below delay would make every burst fire at the deadline
	// instead of the trailing delay.
	if maxWait < delay {
		maxWait = delay
	}
	return &Debouncer{delay: delay, maxWait: maxWait, fn: fn}
}

// Trigger (re)arms the trailing timer. The wait never extends past the
// max-wait deadline of the current burst.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	now := time.Now()
	if d.timer == nil {
		d.deadline = now.Add(d.maxWait)
	} else {
		d.timer.Stop()
	}

	wait := d.delay
	if remaining := d.deadline.Sub(now); remaining < wait {
		wait = remaining
		if wait < 0 {
			wait = 0
		}
	}
	d.timer = time.AfterFunc(wait, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}

// Stop discards any pending callback. Further Trigger calls are no-ops.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
