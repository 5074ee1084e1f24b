package session

import "time"

// Timer tracks elapsed time against an optional overall deadline.
// Expiry is detected only when queried: nothing fires in the background,
// so the owning session must poll Expired at each interaction point.
// While paused, elapsed time is frozen.
type Timer struct {
	limit       time.Duration // 0 = unbounded
	running     bool
	paused      bool
	startedAt   time.Time
	accumulated time.Duration

	now func() time.Time
}

// NewTimer creates a stopped timer with the given limit. A zero limit
// means the timer never expires.
func NewTimer(limit time.Duration) *Timer {
	return &Timer{limit: limit, now: time.Now}
}

// Start begins timing. Starting an already started timer is a state
// error.
func (t *Timer) Start() error {
	if t.running || t.paused {
		return &InvalidStateError{Op: "start timer", State: t.state()}
	}
	t.running = true
	t.startedAt = t.now()
	return nil
}

// Pause freezes the elapsed clock. Only a running timer can be paused.
func (t *Timer) Pause() error {
	if !t.running {
		return &InvalidStateError{Op: "pause timer", State: t.state()}
	}
	t.accumulated += t.now().Sub(t.startedAt)
	t.running = false
	t.paused = true
	return nil
}

// Resume continues a paused timer. No time decays while paused: an
// immediate pause/resume pair leaves Remaining unchanged.
func (t *Timer) Resume() error {
	if !t.paused {
		return &InvalidStateError{Op: "resume timer", State: t.state()}
	}
	t.paused = false
	t.running = true
	t.startedAt = t.now()
	return nil
}

// Elapsed returns the running time excluding paused spans.
func (t *Timer) Elapsed() time.Duration {
	if t.running {
		return t.accumulated + t.now().Sub(t.startedAt)
	}
	return t.accumulated
}

// Remaining returns the time left before the deadline, clamped at zero.
// ok is false when the timer is unbounded.
func (t *Timer) Remaining() (remaining time.Duration, ok bool) {
	if t.limit == 0 {
		return 0, false
	}
	rem := t.limit - t.Elapsed()
	if rem < 0 {
		rem = 0
	}
	return rem, true
}

// Expired reports whether the deadline has passed. An unbounded timer
// never expires.
func (t *Timer) Expired() bool {
	rem, ok := t.Remaining()
	return ok && rem == 0
}

func (t *Timer) state() string {
	switch {
	case t.running:
		return "running"
	case t.paused:
		return "paused"
	default:
		return "stopped"
	}
}
