// Package schedule implements the deferred-work model spec §5 and §9's
// design note require: cancellable, reschedulable timers for temp-layer
// activation/deactivation and debounced settings save, where "calling
// reschedule on a pending handle replaces its deadline" idempotently.
// It is built on github.com/reugn/go-quartz rather than a hand-rolled
// timer wheel, the same way the teacher library reaches for a real
// ioctl syscall wrapper instead of re-deriving one.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/reugn/go-quartz/quartz"
)

// Executor owns one quartz.Scheduler and hands out [Handle]s, one per
// deferred-work slot (a temp-layer activation, a temp-layer
// deactivation, or a debounced save), each bound to its own job key so
// rescheduling one handle never disturbs another.
type Executor struct {
	sched quartz.Scheduler
	seq   atomic.Uint64
}

// NewExecutor builds an Executor and starts its scheduler running on
// ctx; cancelling ctx stops the scheduler.
func NewExecutor(ctx context.Context) *Executor {
	sched := quartz.NewStdScheduler()
	sched.Start(ctx)

	return &Executor{sched: sched}
}

// Stop halts the underlying scheduler. Pending handles never fire
// after this returns.
func (ex *Executor) Stop() {
	ex.sched.Stop()
}

// NewHandle allocates a [Handle] named name (used as the underlying
// job's description and, with a sequence number, its job key) that invokes fn when its
// deadline elapses. The handle starts with nothing scheduled; call
// Reschedule to arm it.
func (ex *Executor) NewHandle(name string, fn func()) *Handle {
	id := ex.seq.Add(1)

	return &Handle{
		ex:  ex,
		key: quartz.NewJobKey(fmt.Sprintf("%s-%d", name, id)),
		job: funcJob{name: name, fn: fn},
	}
}

// funcJob adapts a plain func() to quartz.Job.
type funcJob struct {
	name string
	fn   func()
}

func (j funcJob) Execute(context.Context) error {
	j.fn()

	return nil
}

func (j funcJob) Description() string {
	return j.name
}

// Handle is one cancellable, reschedulable deferred-work slot.
// Rescheduling an already-pending Handle replaces its deadline rather
// than stacking a second firing, matching spec §5's "idempotent
// re-schedule" requirement. Handle is safe for concurrent use.
type Handle struct {
	ex  *Executor
	key *quartz.JobKey
	job quartz.Job
	mu  sync.Mutex
}

// Reschedule arms (or re-arms) the handle to fire after d elapses,
// discarding any previously pending deadline for this handle.
func (h *Handle) Reschedule(d time.Duration) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	_ = h.ex.sched.DeleteJob(h.key) // no-op if nothing was pending

	detail := quartz.NewJobDetail(h.job, h.key)

	if err := h.ex.sched.ScheduleJob(detail, quartz.NewRunOnceTrigger(d)); err != nil {
		return fmt.Errorf("schedule: reschedule %q: %w", h.key, err)
	}

	return nil
}

// Cancel discards the handle's pending deadline, if any. Canceling an
// idle handle is a no-op.
func (h *Handle) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()

	_ = h.ex.sched.DeleteJob(h.key)
}

// Pending reports whether the handle currently has a deadline armed.
func (h *Handle) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.ex.sched.GetScheduledJob(h.key)

	return err == nil
}
