// Package session implements the quiz attempt state machine and its
// timer. A session is ephemeral: it exists for one attempt and is
// converted into an Outcome on completion, never stored itself.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"quizdeck/internal/mix"
	"quizdeck/internal/quiz"
	"quizdeck/internal/score"
)

// State is the lifecycle position of a session.
// Created → InProgress ⇄ Paused → Completed; Completed is terminal.
type State int

const (
	StateCreated State = iota
	StateInProgress
	StatePaused
	StateCompleted
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateInProgress:
		return "in_progress"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// AnswerResult records one submitted answer.
type AnswerResult struct {
	QuestionID string
	Submitted  quiz.Answer
	Correct    bool
	TimeTaken  time.Duration
}

// Outcome is the completed bundle handed to the profile layer for
// persistence: identity, score, tier, and the full answer history.
type Outcome struct {
	SessionID   string
	ProfileID   string
	Score       score.Score
	Level       score.Level
	Results     []AnswerResult
	Duration    time.Duration
	CompletedAt time.Time
}

// ResultSink accepts a completed outcome for persistence. The profile
// manager implements this; the engine never persists on its own.
type ResultSink interface {
	SaveResult(ctx context.Context, out Outcome) error
}

// Option configures a session at creation.
type Option func(*Session)

// WithThresholds overrides the performance-tier cut points.
func WithThresholds(t score.Thresholds) Option {
	return func(s *Session) { s.thresholds = t }
}

// WithClock substitutes the time source (used by tests).
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
		s.timer.now = now
	}
}

// Session orchestrates one quiz attempt over a frozen question list.
// Exactly one active session per profile is the caller's invariant; the
// engine holds no cross-session locking.
type Session struct {
	id        string
	profileID string
	cfg       mix.Config

	questions []quiz.Question
	cursor    int
	results   []AnswerResult

	timer      *Timer
	state      State
	thresholds score.Thresholds

	questionStart time.Time
	questionAccum time.Duration
	outcome       *Outcome
	now           func() time.Time
}

// New creates a session in the Created state. The question list is
// deep-copied so later content edits cannot affect the attempt. The
// config must already have passed Validate; questions come from the
// picker and must be non-empty.
func New(profileID string, cfg mix.Config, questions []quiz.Question, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, &InvalidStateError{Op: "create session without questions", State: "created"}
	}

	frozen := make([]quiz.Question, 0, len(questions))
	for _, q := range questions {
		frozen = append(frozen, q.Clone())
	}

	s := &Session{
		id:         uuid.New().String(),
		profileID:  profileID,
		cfg:        cfg,
		questions:  frozen,
		timer:      NewTimer(cfg.TimeLimit()),
		state:      StateCreated,
		thresholds: score.DefaultThresholds,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ID returns the session UUID.
func (s *Session) ID() string { return s.id }

// ProfileID returns the owning profile's identity.
func (s *Session) ProfileID() string { return s.profileID }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Timer exposes the session timer for elapsed/remaining queries.
func (s *Session) Timer() *Timer { return s.timer }

// Start moves Created → InProgress and starts the timer.
func (s *Session) Start() error {
	if s.state != StateCreated {
		return s.stateErr("start")
	}
	if err := s.timer.Start(); err != nil {
		return err
	}
	s.state = StateInProgress
	s.questionStart = s.now()
	return nil
}

// Current returns the question awaiting an answer. Valid only while the
// session is in progress or paused.
func (s *Session) Current() (quiz.Question, error) {
	if s.state != StateInProgress && s.state != StatePaused {
		return quiz.Question{}, s.stateErr("read current question")
	}
	return s.questions[s.cursor], nil
}

// Submit evaluates an answer for the current question, records the
// result, and advances. Submitting the final answer, or submitting after
// the timer has expired, completes the session and computes the score
// exactly once.
func (s *Session) Submit(answer quiz.Answer) (AnswerResult, error) {
	if s.state != StateInProgress {
		return AnswerResult{}, s.stateErr("submit answer")
	}

	q := s.questions[s.cursor]
	res := AnswerResult{
		QuestionID: q.ID,
		Submitted:  answer,
		Correct:    quiz.Evaluate(q.Correct, answer),
		TimeTaken:  s.questionAccum + s.now().Sub(s.questionStart),
	}
	s.results = append(s.results, res)
	s.cursor++
	s.questionAccum = 0

	if s.cursor >= len(s.questions) || s.timer.Expired() {
		s.complete()
	} else {
		s.questionStart = s.now()
	}
	return res, nil
}

// Pause freezes the timer and banks the active span on the current
// question, so TimeTaken spans pauses the same way the session timer
// does. Only an in-progress session can pause.
func (s *Session) Pause() error {
	if s.state != StateInProgress {
		return s.stateErr("pause")
	}
	if err := s.timer.Pause(); err != nil {
		return err
	}
	s.questionAccum += s.now().Sub(s.questionStart)
	s.state = StatePaused
	return nil
}

// Resume continues a paused session.
func (s *Session) Resume() error {
	if s.state != StatePaused {
		return s.stateErr("resume")
	}
	if err := s.timer.Resume(); err != nil {
		return err
	}
	s.state = StateInProgress
	s.questionStart = s.now()
	return nil
}

// Tick is the cooperative expiry poll: it completes the session if the
// deadline has passed. Callers wanting proactive expiry must schedule
// their own periodic Tick; nothing fires in the background.
func (s *Session) Tick() error {
	if s.state != StateInProgress {
		return s.stateErr("tick")
	}
	if s.timer.Expired() {
		s.complete()
	}
	return nil
}

// Abandon ends the attempt early, scoring only the answers submitted so
// far. This is the explicit cancellation path: there is no implicit
// cancellation on process exit.
func (s *Session) Abandon() error {
	if s.state != StateInProgress && s.state != StatePaused {
		return s.stateErr("abandon")
	}
	s.complete()
	return nil
}

// Outcome returns the completed score bundle. Valid only once the
// session has completed.
func (s *Session) Outcome() (Outcome, error) {
	if s.state != StateCompleted {
		return Outcome{}, s.stateErr("read outcome")
	}
	return *s.outcome, nil
}

// Results returns a copy of the answer history recorded so far.
func (s *Session) Results() []AnswerResult {
	out := make([]AnswerResult, len(s.results))
	copy(out, s.results)
	return out
}

// complete transitions to the terminal state and computes the score
// exactly once.
func (s *Session) complete() {
	if s.timer.running {
		_ = s.timer.Pause()
	}

	correct := 0
	for _, r := range s.results {
		if r.Correct {
			correct++
		}
	}
	sc := score.Compute(correct, len(s.results))

	s.outcome = &Outcome{
		SessionID:   s.id,
		ProfileID:   s.profileID,
		Score:       sc,
		Level:       s.thresholds.Level(sc.Percentage),
		Results:     s.Results(),
		Duration:    s.timer.Elapsed(),
		CompletedAt: s.now(),
	}
	s.state = StateCompleted
}

func (s *Session) stateErr(op string) error {
	if s.state == StateCompleted {
		return ErrSessionClosed
	}
	return &InvalidStateError{Op: op, State: s.state.String()}
}
