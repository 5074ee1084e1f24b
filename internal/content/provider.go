// Package content supplies questions from the versioned content store
// and imports seed packs into it.
package content

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"quizdeck/internal/mix"
	"quizdeck/internal/quiz"
	"quizdeck/internal/store"
)

// Filter narrows the candidate pool before selection. Every field is a
// conjunctive constraint; an empty Types slice means all kinds.
type Filter struct {
	Subjects      []string
	KeyStages     []quiz.KeyStage
	DifficultyMin int
	DifficultyMax int
	Types         []quiz.Kind
}

// FilterFromMix derives the content filter from a validated mix config.
func FilterFromMix(cfg mix.Config) Filter {
	return Filter{
		Subjects:      cfg.Subjects,
		KeyStages:     cfg.KeyStages,
		DifficultyMin: cfg.DifficultyMin,
		DifficultyMax: cfg.DifficultyMax,
		Types:         cfg.Types,
	}
}

// Provider returns questions already filtered by subject, key stage,
// difficulty, and type, with unique IDs within one call. The session
// engine depends only on this contract, not on the storage behind it.
type Provider interface {
	Questions(ctx context.Context, f Filter) ([]quiz.Question, error)
}

// SQLProvider implements Provider over the serialized store connection.
type SQLProvider struct {
	conn *store.Conn
}

// NewSQLProvider creates a provider reading from the given connection.
func NewSQLProvider(conn *store.Conn) *SQLProvider {
	return &SQLProvider{conn: conn}
}

// Questions loads the candidate pool matching f, ordered by ID.
func (p *SQLProvider) Questions(ctx context.Context, f Filter) ([]quiz.Question, error) {
	query := `SELECT id, subject, key_stage, difficulty, type, prompt, answer FROM questions WHERE 1=1`
	var args []any

	if len(f.Subjects) > 0 {
		query += ` AND subject IN (` + placeholders(len(f.Subjects)) + `)`
		for _, s := range f.Subjects {
			args = append(args, s)
		}
	}
	if len(f.KeyStages) > 0 {
		query += ` AND key_stage IN (` + placeholders(len(f.KeyStages)) + `)`
		for _, ks := range f.KeyStages {
			args = append(args, int(ks))
		}
	}
	if f.DifficultyMin > 0 {
		query += ` AND difficulty >= ?`
		args = append(args, f.DifficultyMin)
	}
	if f.DifficultyMax > 0 {
		query += ` AND difficulty <= ?`
		args = append(args, f.DifficultyMax)
	}
	if len(f.Types) > 0 {
		query += ` AND type IN (` + placeholders(len(f.Types)) + `)`
		for _, k := range f.Types {
			args = append(args, string(k))
		}
	}
	query += ` ORDER BY id`

	var questions []quiz.Question
	err := p.conn.Execute(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("query questions: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				q      quiz.Question
				ks     int
				kind   string
				rawAns string
			)
			if err := rows.Scan(&q.ID, &q.Subject, &ks, &q.Difficulty, &kind, &q.Prompt, &rawAns); err != nil {
				return fmt.Errorf("scan question: %w", err)
			}
			q.KeyStage = quiz.KeyStage(ks)
			q.Type = quiz.Kind(kind)
			if q.Correct, err = quiz.UnmarshalAnswer([]byte(rawAns)); err != nil {
				return fmt.Errorf("question %s: %w", q.ID, err)
			}
			questions = append(questions, q)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for i := range questions {
			if questions[i].Type != quiz.KindMultipleChoice {
				continue
			}
			choices, err := loadChoices(ctx, db, questions[i].ID)
			if err != nil {
				return err
			}
			questions[i].Choices = choices
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func loadChoices(ctx context.Context, db *sql.DB, questionID string) ([]quiz.Choice, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT choice_id, label FROM question_choices WHERE question_id = ? ORDER BY position`,
		questionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query choices for %s: %w", questionID, err)
	}
	defer rows.Close()

	var choices []quiz.Choice
	for rows.Next() {
		var c quiz.Choice
		if err := rows.Scan(&c.ID, &c.Text); err != nil {
			return nil, fmt.Errorf("scan choice: %w", err)
		}
		choices = append(choices, c)
	}
	return choices, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
