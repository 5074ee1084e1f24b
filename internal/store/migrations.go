package store

import (
	"context"
	"database/sql"
)

// Migrations returns the full registered schema history. Deltas are
// append-only: released versions are never edited, new changes get the
// next version.
func Migrations() []Migration {
	return []Migration{
		sqlMigration(1, "create subjects",
			`CREATE TABLE subjects (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL UNIQUE,
				created_at TEXT NOT NULL DEFAULT (datetime('now'))
			)`,
		),
		sqlMigration(2, "create profiles",
			`CREATE TABLE profiles (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				key_stage INTEGER NOT NULL,
				created_at TEXT NOT NULL DEFAULT (datetime('now')),
				updated_at TEXT NOT NULL DEFAULT (datetime('now'))
			)`,
		),
		sqlMigration(3, "create custom mixes",
			`CREATE TABLE custom_mixes (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				created_by TEXT NOT NULL,
				config TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE INDEX idx_custom_mixes_created_by ON custom_mixes(created_by)`,
		),
		sqlMigration(4, "create questions",
			`CREATE TABLE questions (
				id TEXT PRIMARY KEY,
				subject TEXT NOT NULL,
				key_stage INTEGER NOT NULL,
				difficulty INTEGER NOT NULL CHECK (difficulty BETWEEN 1 AND 5),
				type TEXT NOT NULL,
				prompt TEXT NOT NULL,
				answer TEXT NOT NULL
			)`,
			`CREATE TABLE question_choices (
				question_id TEXT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
				choice_id TEXT NOT NULL,
				label TEXT NOT NULL,
				position INTEGER NOT NULL,
				PRIMARY KEY (question_id, choice_id)
			)`,
			`CREATE INDEX idx_questions_filter ON questions(subject, key_stage, difficulty, type)`,
		),
		sqlMigration(5, "create content meta",
			`CREATE TABLE content_meta (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				pack_version TEXT NOT NULL,
				seeded_at TEXT NOT NULL
			)`,
		),
		sqlMigration(6, "create quiz results",
			`CREATE TABLE quiz_results (
				id TEXT PRIMARY KEY,
				profile_id TEXT NOT NULL,
				correct INTEGER NOT NULL,
				total INTEGER NOT NULL,
				percentage REAL NOT NULL,
				level INTEGER NOT NULL,
				duration_ms INTEGER NOT NULL,
				completed_at TEXT NOT NULL
			)`,
			`CREATE TABLE quiz_result_answers (
				result_id TEXT NOT NULL REFERENCES quiz_results(id) ON DELETE CASCADE,
				position INTEGER NOT NULL,
				question_id TEXT NOT NULL,
				answer TEXT NOT NULL,
				correct INTEGER NOT NULL,
				time_ms INTEGER NOT NULL,
				PRIMARY KEY (result_id, position)
			)`,
			`CREATE INDEX idx_quiz_results_profile ON quiz_results(profile_id, completed_at)`,
		),
	}
}

// sqlMigration builds a Migration that executes stmts in order.
func sqlMigration(version int, name string, stmts ...string) Migration {
	return Migration{
		Version: version,
		Name:    name,
		Apply: func(ctx context.Context, tx *sql.Tx) error {
			for _, stmt := range stmts {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
