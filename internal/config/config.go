// Package config loads application settings from an optional YAML file
// and QUIZDECK_* environment variables.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"quizdeck/internal/score"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Content  ContentConfig  `mapstructure:"content"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Log      LogConfig      `mapstructure:"log"`
}

type DatabaseConfig struct {
	// Path to the sqlite file. Empty means the platform default under
	// the user data directory.
	Path string `mapstructure:"path"`
}

type ContentConfig struct {
	// SeedPath points at a seed pack JSON to import on init. Empty
	// disables seeding.
	SeedPath string `mapstructure:"seed_path"`
}

type ScoringConfig struct {
	Excellent float64 `mapstructure:"excellent"`
	Good      float64 `mapstructure:"good"`
	Fair      float64 `mapstructure:"fair"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Thresholds converts the scoring section into score cutoffs.
func (c ScoringConfig) Thresholds() score.Thresholds {
	return score.Thresholds{
		Excellent: c.Excellent,
		Good:      c.Good,
		Fair:      c.Fair,
	}
}

// Load reads config.yaml from path (if path is non-empty and the file
// exists) and overlays QUIZDECK_* environment variables. A missing file
// is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("database.path", "")
	v.SetDefault("content.seed_path", "")
	v.SetDefault("scoring.excellent", score.DefaultThresholds.Excellent)
	v.SetDefault("scoring.good", score.DefaultThresholds.Good)
	v.SetDefault("scoring.fair", score.DefaultThresholds.Fair)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("QUIZDECK")
	v.AutomaticEnv()
	_ = v.BindEnv("database.path", "QUIZDECK_DB")
	_ = v.BindEnv("content.seed_path", "QUIZDECK_SEED")
	_ = v.BindEnv("log.level", "QUIZDECK_LOG_LEVEL")

	if path != "" {
		v.AddConfigPath(path)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	t := cfg.Scoring.Thresholds()
	if !(t.Excellent > t.Good && t.Good > t.Fair && t.Fair > 0 && t.Excellent <= 100) {
		return nil, fmt.Errorf("scoring thresholds must be strictly descending within (0, 100], got %.0f/%.0f/%.0f",
			t.Excellent, t.Good, t.Fair)
	}
	return &cfg, nil
}
