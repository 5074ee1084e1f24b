package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SubjectCount is the per-subject slice of the content statistics.
type SubjectCount struct {
	Subject   string
	Questions int
}

// ContentStats is the aggregate snapshot reported after initialization.
type ContentStats struct {
	Questions int
	Subjects  int
	Profiles  int
	Mixes     int
	Results   int
	BySubject []SubjectCount
}

// Stats gathers the aggregate counts in one serialized pass.
func (s *Store) Stats(ctx context.Context) (ContentStats, error) {
	var stats ContentStats
	err := s.conn.Execute(ctx, func(db *sql.DB) error {
		counts := []struct {
			query string
			dest  *int
		}{
			{`SELECT COUNT(*) FROM questions`, &stats.Questions},
			{`SELECT COUNT(*) FROM subjects`, &stats.Subjects},
			{`SELECT COUNT(*) FROM profiles`, &stats.Profiles},
			{`SELECT COUNT(*) FROM custom_mixes`, &stats.Mixes},
			{`SELECT COUNT(*) FROM quiz_results`, &stats.Results},
		}
		for _, c := range counts {
			if err := db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
				return fmt.Errorf("%s: %w", c.query, err)
			}
		}

		rows, err := db.QueryContext(ctx,
			`SELECT subject, COUNT(*) FROM questions GROUP BY subject ORDER BY subject`,
		)
		if err != nil {
			return fmt.Errorf("per-subject counts: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var sc SubjectCount
			if err := rows.Scan(&sc.Subject, &sc.Questions); err != nil {
				return fmt.Errorf("scan subject count: %w", err)
			}
			stats.BySubject = append(stats.BySubject, sc)
		}
		return rows.Err()
	})
	return stats, err
}
