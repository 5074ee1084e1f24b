// Package app wires the store, migrations, and content seeding into the
// one-shot initialization flow the CLI commands share.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"quizdeck/internal/config"
	"quizdeck/internal/content"
	"quizdeck/internal/mix"
	"quizdeck/internal/picker"
	"quizdeck/internal/session"
	"quizdeck/internal/store"
)

// InitReport describes what Initialize found and did.
type InitReport struct {
	DBPath        string
	SchemaVersion int
	Seed          *content.SeedReport
	Stats         store.ContentStats
}

// Initialize resolves the database location, runs all pending
// migrations, seeds content when the question set is empty and a seed
// pack is configured, and returns aggregate statistics. Any failure
// aborts the sequence; the store is left closed either way.
func Initialize(ctx context.Context, cfg *config.Config, log *zap.Logger) (*InitReport, error) {
	dbPath := cfg.Database.Path
	if dbPath == "" {
		var err error
		if dbPath, err = store.DefaultDBPath(); err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}
	if err := store.EnsureDir(dbPath); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	migrator, err := store.NewMigrator(st.Conn(), store.Migrations())
	if err != nil {
		return nil, err
	}
	version, err := migrator.ToLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info("schema ready", zap.String("path", dbPath), zap.Int("version", version))

	report := &InitReport{DBPath: dbPath, SchemaVersion: version}
	stats, err := st.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("gather stats: %w", err)
	}

	if stats.Questions == 0 && cfg.Content.SeedPath != "" {
		seed, err := content.NewSeeder(st.Conn()).SeedFromFile(ctx, cfg.Content.SeedPath)
		if err != nil {
			return nil, fmt.Errorf("seed content: %w", err)
		}
		log.Info("content seeded",
			zap.String("pack_version", seed.PackVersion),
			zap.Int("questions", seed.Questions),
		)
		report.Seed = seed
		if stats, err = st.Stats(ctx); err != nil {
			return nil, fmt.Errorf("gather stats: %w", err)
		}
	}

	report.Stats = stats
	return report, nil
}

// NewSession assembles a quiz session for a profile: validate the mix,
// load the candidate pool, pick and order questions, and hand the frozen
// set to the session engine. Validation runs before the config reaches
// the provider or the picker; an out-of-bound config never produces a
// query or a selection.
func NewSession(ctx context.Context, provider content.Provider, pk *picker.Picker, profileID string, cfg mix.Config, opts ...session.Option) (*session.Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pool, err := provider.Questions(ctx, content.FilterFromMix(cfg))
	if err != nil {
		return nil, fmt.Errorf("load question pool: %w", err)
	}
	questions, err := pk.Pick(pool, cfg)
	if err != nil {
		return nil, err
	}
	return session.New(profileID, cfg, questions, opts...)
}
