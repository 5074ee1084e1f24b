package mix

import (
	"errors"
	"testing"

	"quizdeck/internal/quiz"
)

func validConfig() Config {
	return Config{
		Subjects:      []string{"maths"},
		KeyStages:     []quiz.KeyStage{quiz.KeyStage2},
		QuestionCount: 10,
		DifficultyMin: 1,
		DifficultyMax: 5,
	}
}

func TestValidate_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid baseline", func(c *Config) {}, false},
		{"count lower bound", func(c *Config) { c.QuestionCount = 1 }, false},
		{"count upper bound", func(c *Config) { c.QuestionCount = 100 }, false},
		{"count zero", func(c *Config) { c.QuestionCount = 0 }, true},
		{"count over max", func(c *Config) { c.QuestionCount = 101 }, true},
		{"difficulty full range", func(c *Config) { c.DifficultyMin, c.DifficultyMax = 1, 5 }, false},
		{"difficulty inverted", func(c *Config) { c.DifficultyMin, c.DifficultyMax = 4, 2 }, true},
		{"difficulty min out of range", func(c *Config) { c.DifficultyMin = 0 }, true},
		{"difficulty max out of range", func(c *Config) { c.DifficultyMax = 6 }, true},
		{"time limit lower bound", func(c *Config) { c.TimeLimitSecs = 60 }, false},
		{"time limit upper bound", func(c *Config) { c.TimeLimitSecs = 3600 }, false},
		{"time limit too short", func(c *Config) { c.TimeLimitSecs = 30 }, true},
		{"time limit too long", func(c *Config) { c.TimeLimitSecs = 4000 }, true},
		{"time limit absent", func(c *Config) { c.TimeLimitSecs = 0 }, false},
		{"empty subjects", func(c *Config) { c.Subjects = nil }, true},
		{"empty subject entry", func(c *Config) { c.Subjects = []string{""} }, true},
		{"empty key stages", func(c *Config) { c.KeyStages = nil }, true},
		{"key stage out of range", func(c *Config) { c.KeyStages = []quiz.KeyStage{5} }, true},
		{"known type filter", func(c *Config) { c.Types = []quiz.Kind{quiz.KindNumeric} }, false},
		{"unknown type filter", func(c *Config) { c.Types = []quiz.Kind{"essay"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("expected *ValidationError, got %T", err)
				}
			}
		})
	}
}
