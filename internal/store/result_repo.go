package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quizdeck/internal/quiz"
	"quizdeck/internal/score"
	"quizdeck/internal/session"
)

// ResultRepo persists completed quiz outcomes on behalf of the profile
// layer. It implements session.ResultSink.
type ResultRepo struct {
	conn *Conn
}

var _ session.ResultSink = (*ResultRepo)(nil)

// StoredResult is a persisted outcome as read back from the store.
type StoredResult struct {
	SessionID   string
	ProfileID   string
	Score       score.Score
	Level       score.Level
	Duration    time.Duration
	CompletedAt time.Time
	Answers     []session.AnswerResult
}

// SaveResult writes the outcome and its full answer history in one
// transaction.
func (r *ResultRepo) SaveResult(ctx context.Context, out session.Outcome) error {
	return r.conn.Execute(ctx, func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin save result: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO quiz_results (id, profile_id, correct, total, percentage, level, duration_ms, completed_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			out.SessionID, out.ProfileID,
			out.Score.Correct, out.Score.Total, out.Score.Percentage,
			int(out.Level), out.Duration.Milliseconds(),
			out.CompletedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert quiz result: %w", err)
		}

		for i, a := range out.Results {
			ans, err := quiz.MarshalAnswer(a.Submitted)
			if err != nil {
				tx.Rollback()
				return fmt.Errorf("encode answer %d: %w", i, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO quiz_result_answers (result_id, position, question_id, answer, correct, time_ms)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				out.SessionID, i, a.QuestionID, string(ans), boolToInt(a.Correct), a.TimeTaken.Milliseconds(),
			); err != nil {
				tx.Rollback()
				return fmt.Errorf("insert result answer %d: %w", i, err)
			}
		}
		return tx.Commit()
	})
}

// ListByProfile returns a profile's results, newest first, with answer
// histories attached.
func (r *ResultRepo) ListByProfile(ctx context.Context, profileID string) ([]StoredResult, error) {
	var results []StoredResult
	err := r.conn.Execute(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			`SELECT id, profile_id, correct, total, percentage, level, duration_ms, completed_at
			 FROM quiz_results WHERE profile_id = ? ORDER BY completed_at DESC`, profileID,
		)
		if err != nil {
			return fmt.Errorf("list quiz results: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				sr          StoredResult
				level       int
				durationMs  int64
				completedAt string
			)
			if err := rows.Scan(&sr.SessionID, &sr.ProfileID,
				&sr.Score.Correct, &sr.Score.Total, &sr.Score.Percentage,
				&level, &durationMs, &completedAt); err != nil {
				return fmt.Errorf("scan quiz result: %w", err)
			}
			sr.Level = score.Level(level)
			sr.Duration = time.Duration(durationMs) * time.Millisecond
			if sr.CompletedAt, err = time.Parse(time.RFC3339Nano, completedAt); err != nil {
				return fmt.Errorf("parse completed_at: %w", err)
			}
			results = append(results, sr)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for i := range results {
			answers, err := loadAnswers(ctx, db, results[i].SessionID)
			if err != nil {
				return err
			}
			results[i].Answers = answers
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func loadAnswers(ctx context.Context, db *sql.DB, resultID string) ([]session.AnswerResult, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT question_id, answer, correct, time_ms
		 FROM quiz_result_answers WHERE result_id = ? ORDER BY position`, resultID,
	)
	if err != nil {
		return nil, fmt.Errorf("list result answers: %w", err)
	}
	defer rows.Close()

	var answers []session.AnswerResult
	for rows.Next() {
		var (
			a       session.AnswerResult
			raw     string
			correct int
			timeMs  int64
		)
		if err := rows.Scan(&a.QuestionID, &raw, &correct, &timeMs); err != nil {
			return nil, fmt.Errorf("scan result answer: %w", err)
		}
		if a.Submitted, err = quiz.UnmarshalAnswer([]byte(raw)); err != nil {
			return nil, err
		}
		a.Correct = correct != 0
		a.TimeTaken = time.Duration(timeMs) * time.Millisecond
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
