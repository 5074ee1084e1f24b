package session

import (
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTimer(limit time.Duration, clock *fakeClock) *Timer {
	tm := NewTimer(limit)
	tm.now = clock.Now
	return tm
}

func TestTimer_ElapsedPlusRemainingEqualsLimit(t *testing.T) {
	clock := newFakeClock()
	tm := newTestTimer(5*time.Minute, clock)

	if err := tm.Start(); err != nil {
		t.Fatal(err)
	}
	clock.Advance(90 * time.Second)

	rem, ok := tm.Remaining()
	if !ok {
		t.Fatal("expected bounded timer")
	}
	if got := tm.Elapsed() + rem; got != 5*time.Minute {
		t.Errorf("elapsed + remaining = %v, want %v", got, 5*time.Minute)
	}
}

func TestTimer_PauseFreezesElapsed(t *testing.T) {
	clock := newFakeClock()
	tm := newTestTimer(10*time.Minute, clock)

	if err := tm.Start(); err != nil {
		t.Fatal(err)
	}
	clock.Advance(2 * time.Minute)
	if err := tm.Pause(); err != nil {
		t.Fatal(err)
	}

	remBefore, _ := tm.Remaining()
	clock.Advance(30 * time.Minute) // paused time must not decay
	remAfter, _ := tm.Remaining()

	if remBefore != remAfter {
		t.Errorf("remaining changed while paused: %v → %v", remBefore, remAfter)
	}
	if tm.Elapsed() != 2*time.Minute {
		t.Errorf("elapsed = %v, want 2m", tm.Elapsed())
	}
}

func TestTimer_PauseResumeImmediate(t *testing.T) {
	clock := newFakeClock()
	tm := newTestTimer(time.Minute, clock)

	if err := tm.Start(); err != nil {
		t.Fatal(err)
	}
	clock.Advance(10 * time.Second)

	remBefore, _ := tm.Remaining()
	if err := tm.Pause(); err != nil {
		t.Fatal(err)
	}
	if err := tm.Resume(); err != nil {
		t.Fatal(err)
	}
	remAfter, _ := tm.Remaining()

	if remBefore != remAfter {
		t.Errorf("pause then immediate resume changed remaining: %v → %v", remBefore, remAfter)
	}
}

func TestTimer_ExpiryIsPolled(t *testing.T) {
	clock := newFakeClock()
	tm := newTestTimer(time.Minute, clock)

	if err := tm.Start(); err != nil {
		t.Fatal(err)
	}
	if tm.Expired() {
		t.Error("timer expired immediately")
	}

	clock.Advance(2 * time.Minute)
	if !tm.Expired() {
		t.Error("timer should report expiry once queried past the deadline")
	}
	rem, _ := tm.Remaining()
	if rem != 0 {
		t.Errorf("remaining = %v, want 0 (clamped)", rem)
	}
}

func TestTimer_Unbounded(t *testing.T) {
	clock := newFakeClock()
	tm := newTestTimer(0, clock)

	if err := tm.Start(); err != nil {
		t.Fatal(err)
	}
	clock.Advance(100 * time.Hour)

	if _, ok := tm.Remaining(); ok {
		t.Error("unbounded timer should report no remaining value")
	}
	if tm.Expired() {
		t.Error("unbounded timer must never expire")
	}
}

func TestTimer_StateErrors(t *testing.T) {
	tm := NewTimer(time.Minute)

	if err := tm.Pause(); err == nil {
		t.Error("pause before start should fail")
	}
	if err := tm.Resume(); err == nil {
		t.Error("resume before start should fail")
	}
	if err := tm.Start(); err != nil {
		t.Fatal(err)
	}
	if err := tm.Start(); err == nil {
		t.Error("double start should fail")
	}
}
