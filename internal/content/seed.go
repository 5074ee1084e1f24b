package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/mod/semver"

	"quizdeck/internal/quiz"
	"quizdeck/internal/store"
)

// SeedQuestion is the wire form of one question in a seed pack.
type SeedQuestion struct {
	ID         string          `json:"id"`
	Subject    string          `json:"subject"`
	KeyStage   int             `json:"key_stage"`
	Difficulty int             `json:"difficulty"`
	Type       quiz.Kind       `json:"type"`
	Prompt     string          `json:"prompt"`
	Answer     json.RawMessage `json:"answer"`
	Choices    []quiz.Choice   `json:"choices,omitempty"`
}

// SeedPack is a versioned bundle of questions. Packs replace the whole
// question set: a pack at or below the installed version is skipped.
type SeedPack struct {
	PackVersion string         `json:"pack_version"`
	Questions   []SeedQuestion `json:"questions"`
}

// SeedReport summarizes one seeding run.
type SeedReport struct {
	PackVersion string
	Questions   int
	Subjects    int
	Skipped     bool
}

// Seeder imports seed packs into the content store.
type Seeder struct {
	conn *store.Conn
}

// NewSeeder creates a seeder writing through the given connection.
func NewSeeder(conn *store.Conn) *Seeder {
	return &Seeder{conn: conn}
}

// SeedFromFile reads, validates, and imports the pack at path.
func (s *Seeder) SeedFromFile(ctx context.Context, path string) (*SeedReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed pack: %w", err)
	}
	return s.Seed(ctx, data)
}

// Seed validates raw pack JSON and imports it. The import replaces all
// existing questions in a single transaction; on any failure the
// previous content remains intact.
func (s *Seeder) Seed(ctx context.Context, raw []byte) (*SeedReport, error) {
	pack, err := parsePack(raw)
	if err != nil {
		return nil, err
	}

	installed, err := s.installedVersion(ctx)
	if err != nil {
		return nil, err
	}
	if installed != "" && semver.Compare(pack.PackVersion, installed) <= 0 {
		return &SeedReport{PackVersion: installed, Skipped: true}, nil
	}

	subjects := make(map[string]struct{})
	for _, q := range pack.Questions {
		subjects[q.Subject] = struct{}{}
	}

	report := &SeedReport{
		PackVersion: pack.PackVersion,
		Questions:   len(pack.Questions),
		Subjects:    len(subjects),
	}
	err = s.conn.Execute(ctx, func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin seed tx: %w", err)
		}
		defer tx.Rollback()

		if err := replaceQuestions(ctx, tx, pack.Questions); err != nil {
			return err
		}
		for subject := range subjects {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO subjects (name) VALUES (?)`, subject,
			); err != nil {
				return fmt.Errorf("insert subject %s: %w", subject, err)
			}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO content_meta (id, pack_version, seeded_at) VALUES (1, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET pack_version = excluded.pack_version, seeded_at = excluded.seeded_at`,
			pack.PackVersion, time.Now().UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("update content meta: %w", err)
		}
		return tx.Commit()
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// parsePack validates raw against the pack schema, then applies the
// cross-field rules the schema cannot express.
func parsePack(raw []byte) (*SeedPack, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("seed pack is not valid JSON: %w", err)
	}
	schema, err := compilePackSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("seed pack schema: %w", err)
	}

	var pack SeedPack
	if err := json.Unmarshal(raw, &pack); err != nil {
		return nil, fmt.Errorf("decode seed pack: %w", err)
	}
	if !semver.IsValid(pack.PackVersion) {
		return nil, fmt.Errorf("seed pack version %q is not a valid semver", pack.PackVersion)
	}

	seen := make(map[string]struct{}, len(pack.Questions))
	for i, q := range pack.Questions {
		if _, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("question %d: duplicate id %s", i, q.ID)
		}
		seen[q.ID] = struct{}{}
		if err := checkQuestion(q); err != nil {
			return nil, fmt.Errorf("question %s: %w", q.ID, err)
		}
	}
	return &pack, nil
}

func checkQuestion(q SeedQuestion) error {
	answer, err := quiz.UnmarshalAnswer(q.Answer)
	if err != nil {
		return err
	}
	if answer.Kind() != q.Type {
		return fmt.Errorf("answer kind %s does not match question type %s", answer.Kind(), q.Type)
	}
	switch q.Type {
	case quiz.KindMultipleChoice:
		if len(q.Choices) < 2 {
			return fmt.Errorf("multiple choice question needs at least 2 choices, got %d", len(q.Choices))
		}
		want := answer.(quiz.ChoiceAnswer).ChoiceID
		for _, c := range q.Choices {
			if c.ID == want {
				return nil
			}
		}
		return fmt.Errorf("correct choice %s is not among the choices", want)
	default:
		if len(q.Choices) > 0 {
			return fmt.Errorf("%s question must not carry choices", q.Type)
		}
	}
	return nil
}

func replaceQuestions(ctx context.Context, tx *sql.Tx, questions []SeedQuestion) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return fmt.Errorf("clear questions: %w", err)
	}
	for _, q := range questions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO questions (id, subject, key_stage, difficulty, type, prompt, answer)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			q.ID, q.Subject, q.KeyStage, q.Difficulty, string(q.Type), q.Prompt, string(q.Answer),
		); err != nil {
			return fmt.Errorf("insert question %s: %w", q.ID, err)
		}
		for pos, c := range q.Choices {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO question_choices (question_id, choice_id, label, position)
				 VALUES (?, ?, ?, ?)`,
				q.ID, c.ID, c.Text, pos,
			); err != nil {
				return fmt.Errorf("insert choice %s/%s: %w", q.ID, c.ID, err)
			}
		}
	}
	return nil
}

func (s *Seeder) installedVersion(ctx context.Context) (string, error) {
	var version string
	err := s.conn.Execute(ctx, func(db *sql.DB) error {
		row := db.QueryRowContext(ctx, `SELECT pack_version FROM content_meta WHERE id = 1`)
		if err := row.Scan(&version); err != nil {
			if err == sql.ErrNoRows {
				return nil
			}
			return fmt.Errorf("read content meta: %w", err)
		}
		return nil
	})
	return version, err
}
