package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"quizdeck/internal/mix"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// MixRepo persists custom mixes. Configs are validated before every
// create and update: an out-of-bound config is rejected here exactly as
// it would be at session start.
type MixRepo struct {
	conn *Conn
}

// Create validates and inserts a new mix. A missing ID is assigned, and
// timestamps are set.
func (r *MixRepo) Create(ctx context.Context, m *mix.CustomMix) error {
	if err := m.Config.Validate(); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	cfg, err := json.Marshal(m.Config)
	if err != nil {
		return fmt.Errorf("encode mix config: %w", err)
	}
	return r.conn.Execute(ctx, func(db *sql.DB) error {
		_, err := db.ExecContext(ctx,
			`INSERT INTO custom_mixes (id, name, created_by, config, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			m.ID, m.Name, m.CreatedBy, string(cfg),
			now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("insert custom mix: %w", err)
		}
		return nil
	})
}

// Update validates and rewrites the mix's name and config.
func (r *MixRepo) Update(ctx context.Context, m *mix.CustomMix) error {
	if err := m.Config.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	cfg, err := json.Marshal(m.Config)
	if err != nil {
		return fmt.Errorf("encode mix config: %w", err)
	}
	return r.conn.Execute(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx,
			`UPDATE custom_mixes SET name = ?, config = ?, updated_at = ? WHERE id = ?`,
			m.Name, string(cfg), now.Format(time.RFC3339Nano), m.ID,
		)
		if err != nil {
			return fmt.Errorf("update custom mix: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("custom mix %s: %w", m.ID, ErrNotFound)
		}
		m.UpdatedAt = now
		return nil
	})
}

// Get loads one mix by ID.
func (r *MixRepo) Get(ctx context.Context, id string) (*mix.CustomMix, error) {
	var m *mix.CustomMix
	err := r.conn.Execute(ctx, func(db *sql.DB) error {
		row := db.QueryRowContext(ctx,
			`SELECT id, name, created_by, config, created_at, updated_at
			 FROM custom_mixes WHERE id = ?`, id,
		)
		var err error
		m, err = scanMix(row)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListByProfile returns the mixes a profile owns, newest first.
func (r *MixRepo) ListByProfile(ctx context.Context, profileID string) ([]mix.CustomMix, error) {
	var mixes []mix.CustomMix
	err := r.conn.Execute(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			`SELECT id, name, created_by, config, created_at, updated_at
			 FROM custom_mixes WHERE created_by = ? ORDER BY created_at DESC`, profileID,
		)
		if err != nil {
			return fmt.Errorf("list custom mixes: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			m, err := scanMix(rows)
			if err != nil {
				return err
			}
			mixes = append(mixes, *m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return mixes, nil
}

// Delete removes a mix.
func (r *MixRepo) Delete(ctx context.Context, id string) error {
	return r.conn.Execute(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, `DELETE FROM custom_mixes WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete custom mix: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("custom mix %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMix(s scanner) (*mix.CustomMix, error) {
	var (
		m                    mix.CustomMix
		cfg                  string
		createdAt, updatedAt string
	)
	if err := s.Scan(&m.ID, &m.Name, &m.CreatedBy, &cfg, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan custom mix: %w", err)
	}
	if err := json.Unmarshal([]byte(cfg), &m.Config); err != nil {
		return nil, fmt.Errorf("decode mix config: %w", err)
	}
	var err error
	if m.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if m.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &m, nil
}
