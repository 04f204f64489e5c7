package forms

import (
	"sync"
	"time"
)

// Scheduler arms f to run once after d and returns a function that
// disarms it.
type Scheduler func(d time.Duration, f func()) (stop func() bool)

// TimerScheduler is the production Scheduler backed by time.AfterFunc.
func TimerScheduler(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Debouncer runs fn once the calls to Trigger have been quiet for delay.
type Debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	schedule Scheduler
	fn       func()

	stop    func() bool
	gen     uint64
	pending bool
}

func NewDebouncer(delay time.Duration, schedule Scheduler, fn func()) *Debouncer {
	if schedule == nil {
		schedule = TimerScheduler
	}
	return &Debouncer{delay: delay, schedule: schedule, fn: fn}
}

// Trigger (re)arms the timer; a pending run is pushed back.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stop != nil {
		d.stop()
	}
	d.gen++
	gen := d.gen
	d.pending = true
	d.stop = d.schedule(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.stop = nil
	d.mu.Unlock()

	d.fn()
}

// Flush runs a pending call right away. It is a no-op when nothing is
// pending.
func (d *Debouncer) Flush() {
	if d.disarm() {
		d.fn()
	}
}

// Cancel drops a pending call without running it.
func (d *Debouncer) Cancel() {
	d.disarm()
}

func (d *Debouncer) disarm() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.pending {
		return false
	}
	if d.stop != nil {
		d.stop()
		d.stop = nil
	}
	d.gen++
	d.pending = false
	return true
}

func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
