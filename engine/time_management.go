package engine

import (
	"sync/atomic"
	"time"
)

// TimeHandler tracks the deadline of one ChooseMove call. It is read-only
// once started, so every worker of the call shares it.
type TimeHandler struct {
	start     time.Time
	deadline  time.Time
	unlimited bool
	stop      *atomic.Bool
	parent    *TimeHandler
}

func newTimeHandler(budget time.Duration, stop *atomic.Bool) *TimeHandler {
	th := &TimeHandler{stop: stop}
	th.StartTime(budget)
	return th
}

// StartTime arms the deadline budget from now. NoTimeLimit disables it.
func (th *TimeHandler) StartTime(budget time.Duration) {
	th.start = time.Now()
	th.unlimited = budget < 0
	th.deadline = th.start.Add(budget)
}

// Slice returns a handler for the next budget, never running past th's own
// deadline. Stopping th stops the slice too.
func (th *TimeHandler) Slice(budget time.Duration) *TimeHandler {
	sub := newTimeHandler(budget, nil)
	sub.parent = th
	if !th.unlimited && (sub.unlimited || sub.deadline.After(th.deadline)) {
		sub.deadline = th.deadline
		sub.unlimited = false
	}
	return sub
}

// withStop returns a handler with th's deadline and an extra stop flag.
func (th *TimeHandler) withStop(stop *atomic.Bool) *TimeHandler {
	return &TimeHandler{start: th.start, deadline: th.deadline, unlimited: th.unlimited, stop: stop, parent: th}
}

/*
  - True once the deadline has passed or the call was stopped
  - False if we still have time
*/
func (th *TimeHandler) TimeStatus() bool {
	if th.stop != nil && th.stop.Load() {
		return true
	}
	if th.parent != nil && th.parent.TimeStatus() {
		return true
	}
	return !th.unlimited && !time.Now().Before(th.deadline)
}

// Remaining returns the time left, or NoTimeLimit when unlimited.
func (th *TimeHandler) Remaining() time.Duration {
	if th.unlimited {
		return NoTimeLimit
	}
	return Max(time.Until(th.deadline), 0)
}

// Elapsed returns the time since StartTime.
func (th *TimeHandler) Elapsed() time.Duration { return time.Since(th.start) }

// Deadline returns the absolute deadline and whether one is set.
func (th *TimeHandler) Deadline() (time.Time, bool) { return th.deadline, !th.unlimited }
