package mix

import "fmt"

// Bounds for Config fields. A Config violating any of these is never
// constructable: creation, update, and session start all gate on
// Validate.
const (
	MinQuestionCount = 1
	MaxQuestionCount = 100

	MinDifficulty = 1
	MaxDifficulty = 5

	MinTimeLimitSecs = 60
	MaxTimeLimitSecs = 3600
)

// ValidationError describes a single out-of-bound Config field. It is
// recoverable and surfaced verbatim to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid mix config: %s %s", e.Field, e.Message)
}

// Validate checks every Config bound and returns the first violation.
func (c Config) Validate() error {
	if len(c.Subjects) == 0 {
		return &ValidationError{Field: "subjects", Message: "must not be empty"}
	}
	for _, s := range c.Subjects {
		if s == "" {
			return &ValidationError{Field: "subjects", Message: "must not contain empty entries"}
		}
	}
	if len(c.KeyStages) == 0 {
		return &ValidationError{Field: "key_stages", Message: "must not be empty"}
	}
	for _, ks := range c.KeyStages {
		if !ks.Valid() {
			return &ValidationError{
				Field:   "key_stages",
				Message: fmt.Sprintf("unknown key stage %d", int(ks)),
			}
		}
	}
	if c.QuestionCount < MinQuestionCount || c.QuestionCount > MaxQuestionCount {
		return &ValidationError{
			Field:   "question_count",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinQuestionCount, MaxQuestionCount, c.QuestionCount),
		}
	}
	if c.DifficultyMin < MinDifficulty || c.DifficultyMin > MaxDifficulty {
		return &ValidationError{
			Field:   "difficulty_min",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinDifficulty, MaxDifficulty, c.DifficultyMin),
		}
	}
	if c.DifficultyMax < MinDifficulty || c.DifficultyMax > MaxDifficulty {
		return &ValidationError{
			Field:   "difficulty_max",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinDifficulty, MaxDifficulty, c.DifficultyMax),
		}
	}
	if c.DifficultyMin > c.DifficultyMax {
		return &ValidationError{
			Field:   "difficulty_range",
			Message: fmt.Sprintf("min %d exceeds max %d", c.DifficultyMin, c.DifficultyMax),
		}
	}
	if c.TimeLimitSecs != 0 && (c.TimeLimitSecs < MinTimeLimitSecs || c.TimeLimitSecs > MaxTimeLimitSecs) {
		return &ValidationError{
			Field:   "time_limit_secs",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinTimeLimitSecs, MaxTimeLimitSecs, c.TimeLimitSecs),
		}
	}
	for _, k := range c.Types {
		if !k.Valid() {
			return &ValidationError{
				Field:   "question_types",
				Message: fmt.Sprintf("unknown question type %q", k),
			}
		}
	}
	return nil
}
