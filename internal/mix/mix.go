// Package mix defines the reusable quiz-generation configuration and
// its validation rules.
package mix

import (
	"time"

	"quizdeck/internal/quiz"
)

// Config describes how a quiz is assembled: which content to draw from,
// how many questions, and how the session behaves. A Config must pass
// Validate before it is persisted and before it is handed to the picker.
type Config struct {
	Subjects      []string        `json:"subjects"`
	KeyStages     []quiz.KeyStage `json:"key_stages"`
	QuestionCount int             `json:"question_count"`
	DifficultyMin int             `json:"difficulty_min"`
	DifficultyMax int             `json:"difficulty_max"`

	// TimeLimitSecs bounds the whole session. 0 means unbounded.
	TimeLimitSecs int `json:"time_limit_secs,omitempty"`

	// Types restricts question kinds. Empty means all kinds.
	Types []quiz.Kind `json:"question_types,omitempty"`

	RandomizeOrder    bool `json:"randomize_order"`
	ImmediateFeedback bool `json:"show_immediate_feedback"`
	AllowReview       bool `json:"allow_review"`
}

// TimeLimit returns the configured limit as a duration, 0 if unbounded.
func (c Config) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitSecs) * time.Second
}

// CustomMix is a named, profile-owned Config. Name and Config are
// mutable; updates are revalidated before they are accepted.
type CustomMix struct {
	ID        string
	Name      string
	CreatedBy string
	Config    Config
	CreatedAt time.Time
	UpdatedAt time.Time
}
