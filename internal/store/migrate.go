package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
)

// Migration is a single schema delta. Versions are positive and
// strictly increasing across the registered set.
type Migration struct {
	Version int
	Name    string
	Apply   func(ctx context.Context, tx *sql.Tx) error
}

// Migrator applies registered schema deltas in ascending version order.
// The persisted schema version is a single monotonically increasing
// integer, bumped exactly once per applied delta, never decremented.
type Migrator struct {
	conn       *Conn
	migrations []Migration
}

// NewMigrator validates the registered set: versions must be positive
// and unique. The set is sorted ascending.
func NewMigrator(conn *Conn, migrations []Migration) (*Migrator, error) {
	ms := make([]Migration, len(migrations))
	copy(ms, migrations)
	sort.Slice(ms, func(i, j int) bool { return ms[i].Version < ms[j].Version })

	prev := 0
	for _, m := range ms {
		if m.Version <= prev {
			return nil, fmt.Errorf("migration versions must be strictly increasing: %d after %d", m.Version, prev)
		}
		if m.Apply == nil {
			return nil, fmt.Errorf("migration %d (%s) has no apply func", m.Version, m.Name)
		}
		prev = m.Version
	}
	return &Migrator{conn: conn, migrations: ms}, nil
}

// Current returns the stored schema version, 0 if nothing has been
// applied yet.
func (m *Migrator) Current(ctx context.Context) (int, error) {
	var version int
	err := m.conn.Execute(ctx, func(db *sql.DB) error {
		if err := ensureVersionTable(ctx, db); err != nil {
			return err
		}
		var err error
		version, err = readVersion(ctx, db)
		return err
	})
	return version, err
}

// ToLatest applies every pending delta in ascending order, each inside
// its own transaction with the version bump committed atomically
// alongside it. On failure the remaining deltas are not attempted and
// the stored version reflects the last successfully committed delta.
// The connection is held for the entire sequence. Calling ToLatest when
// already current is a no-op.
func (m *Migrator) ToLatest(ctx context.Context) (int, error) {
	var version int
	err := m.conn.Execute(ctx, func(db *sql.DB) error {
		if err := ensureVersionTable(ctx, db); err != nil {
			return err
		}
		current, err := readVersion(ctx, db)
		if err != nil {
			return err
		}
		version = current

		for _, mig := range m.migrations {
			if mig.Version <= current {
				continue
			}
			if err := applyOne(ctx, db, mig); err != nil {
				return err
			}
			current = mig.Version
			version = current
		}
		return nil
	})
	return version, err
}

// applyOne runs a single delta and its version bump in one transaction,
// so no partial delta is ever left half-applied.
func applyOne(ctx context.Context, db *sql.DB, mig Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %d (%s): %w", mig.Version, mig.Name, err)
	}
	if err := mig.Apply(ctx, tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("apply migration %d (%s): %w", mig.Version, mig.Name, err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE schema_version SET version = ? WHERE id = 1 AND version < ?`,
		mig.Version, mig.Version,
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("record migration %d (%s): %w", mig.Version, mig.Name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d (%s): %w", mig.Version, mig.Name, err)
	}
	return nil
}

// ensureVersionTable creates and seeds the single-row version table.
func ensureVersionTable(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		version INTEGER NOT NULL DEFAULT 0
	)`); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO schema_version (id, version) VALUES (1, 0)`,
	); err != nil {
		return fmt.Errorf("seed schema_version: %w", err)
	}
	return nil
}

func readVersion(ctx context.Context, db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRowContext(ctx,
		`SELECT version FROM schema_version WHERE id = 1`,
	).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}
