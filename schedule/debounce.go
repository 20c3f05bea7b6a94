package schedule

import "time"

// Debouncer coalesces repeated Trigger calls into a single deferred fn
// invocation, firing once after the quietest delay of its configured
// window — spec §5's "settings save (debounced by a configured
// interval; repeated calls coalesce)".
type Debouncer struct {
	handle *Handle
	delay  time.Duration
}

// NewDebouncer builds a Debouncer that invokes fn after delay elapses
// with no intervening Trigger call.
func NewDebouncer(ex *Executor, name string, delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{
		handle: ex.NewHandle(name, fn),
		delay:  delay,
	}
}

// Trigger (re)arms the debounce window, pushing the eventual fn call
// delay further out. Repeated Trigger calls within delay of each other
// result in exactly one fn invocation.
func (d *Debouncer) Trigger() error {
	return d.handle.Reschedule(d.delay)
}

// Cancel discards any pending debounced invocation.
func (d *Debouncer) Cancel() {
	d.handle.Cancel()
}
