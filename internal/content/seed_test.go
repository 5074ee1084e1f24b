package content

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"quizdeck/internal/mix"
	"quizdeck/internal/quiz"
	"quizdeck/internal/store"
)

func openSeededConn(t *testing.T) *store.Conn {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	migrator, err := store.NewMigrator(st.Conn(), store.Migrations())
	if err != nil {
		t.Fatalf("new migrator: %v", err)
	}
	if _, err := migrator.ToLatest(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return st.Conn()
}

func testPack(version string) []byte {
	pack := map[string]any{
		"pack_version": version,
		"questions": []any{
			map[string]any{
				"id": "q-add-1", "subject": "maths", "key_stage": 2, "difficulty": 1,
				"type": "numeric", "prompt": "What is 2 + 4?",
				"answer": map[string]any{"kind": "numeric", "number": "6"},
			},
			map[string]any{
				"id": "q-cap-1", "subject": "geography", "key_stage": 3, "difficulty": 2,
				"type": "multiple_choice", "prompt": "Capital of France?",
				"answer": map[string]any{"kind": "multiple_choice", "choice_id": "b"},
				"choices": []any{
					map[string]any{"id": "a", "text": "Lyon"},
					map[string]any{"id": "b", "text": "Paris"},
					map[string]any{"id": "c", "text": "Nice"},
				},
			},
			map[string]any{
				"id": "q-prime-1", "subject": "maths", "key_stage": 3, "difficulty": 4,
				"type": "true_false", "prompt": "Is 9 a prime number?",
				"answer": map[string]any{"kind": "true_false", "value": false},
			},
		},
	}
	raw, err := json.Marshal(pack)
	if err != nil {
		panic(err)
	}
	return raw
}

func TestSeeder_SeedAndQuery(t *testing.T) {
	conn := openSeededConn(t)
	ctx := context.Background()

	report, err := NewSeeder(conn).Seed(ctx, testPack("v1.0.0"))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if report.Skipped {
		t.Fatal("first seed must not be skipped")
	}
	if report.Questions != 3 || report.Subjects != 2 {
		t.Fatalf("report = %+v, want 3 questions, 2 subjects", report)
	}
	if report.PackVersion != "v1.0.0" {
		t.Fatalf("pack version = %s, want v1.0.0", report.PackVersion)
	}

	questions, err := NewSQLProvider(conn).Questions(ctx, Filter{})
	if err != nil {
		t.Fatalf("query all: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(questions))
	}
	for _, q := range questions {
		if q.ID == "q-cap-1" {
			if len(q.Choices) != 3 {
				t.Fatalf("q-cap-1 has %d choices, want 3", len(q.Choices))
			}
			if !quiz.Evaluate(q.Correct, quiz.ChoiceAnswer{ChoiceID: "b"}) {
				t.Fatal("stored answer does not match choice b")
			}
		}
	}
}

func TestSeeder_SkipsOlderOrEqualPack(t *testing.T) {
	conn := openSeededConn(t)
	ctx := context.Background()
	seeder := NewSeeder(conn)

	if _, err := seeder.Seed(ctx, testPack("v1.2.0")); err != nil {
		t.Fatalf("seed v1.2.0: %v", err)
	}

	for _, version := range []string{"v1.2.0", "v1.1.9", "v0.9.0"} {
		report, err := seeder.Seed(ctx, testPack(version))
		if err != nil {
			t.Fatalf("seed %s: %v", version, err)
		}
		if !report.Skipped {
			t.Fatalf("pack %s must be skipped, installed is v1.2.0", version)
		}
		if report.PackVersion != "v1.2.0" {
			t.Fatalf("skipped report carries %s, want installed v1.2.0", report.PackVersion)
		}
	}

	report, err := seeder.Seed(ctx, testPack("v1.3.0"))
	if err != nil {
		t.Fatalf("seed v1.3.0: %v", err)
	}
	if report.Skipped {
		t.Fatal("newer pack must not be skipped")
	}
}

func TestSeeder_RejectsMalformedPacks(t *testing.T) {
	conn := openSeededConn(t)
	seeder := NewSeeder(conn)

	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `{"pack_version":`},
		{"missing version", `{"questions": [{"id": "q1", "subject": "maths", "key_stage": 1, "difficulty": 1, "type": "text", "prompt": "?", "answer": {"kind": "text", "text": "a"}}]}`},
		{"bad version format", `{"pack_version": "1.0", "questions": [{"id": "q1", "subject": "maths", "key_stage": 1, "difficulty": 1, "type": "text", "prompt": "?", "answer": {"kind": "text", "text": "a"}}]}`},
		{"no questions", `{"pack_version": "v1.0.0", "questions": []}`},
		{"key stage out of range", `{"pack_version": "v1.0.0", "questions": [{"id": "q1", "subject": "maths", "key_stage": 5, "difficulty": 1, "type": "text", "prompt": "?", "answer": {"kind": "text", "text": "a"}}]}`},
		{"unknown question type", `{"pack_version": "v1.0.0", "questions": [{"id": "q1", "subject": "maths", "key_stage": 1, "difficulty": 1, "type": "essay", "prompt": "?", "answer": {"kind": "text", "text": "a"}}]}`},
		{"kind mismatch", `{"pack_version": "v1.0.0", "questions": [{"id": "q1", "subject": "maths", "key_stage": 1, "difficulty": 1, "type": "numeric", "prompt": "?", "answer": {"kind": "text", "text": "a"}}]}`},
		{"choice not listed", `{"pack_version": "v1.0.0", "questions": [{"id": "q1", "subject": "maths", "key_stage": 1, "difficulty": 1, "type": "multiple_choice", "prompt": "?", "answer": {"kind": "multiple_choice", "choice_id": "z"}, "choices": [{"id": "a", "text": "A"}, {"id": "b", "text": "B"}]}]}`},
		{"duplicate ids", `{"pack_version": "v1.0.0", "questions": [{"id": "q1", "subject": "maths", "key_stage": 1, "difficulty": 1, "type": "text", "prompt": "?", "answer": {"kind": "text", "text": "a"}}, {"id": "q1", "subject": "maths", "key_stage": 1, "difficulty": 1, "type": "text", "prompt": "?", "answer": {"kind": "text", "text": "b"}}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := seeder.Seed(context.Background(), []byte(tc.raw)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestSQLProvider_Filters(t *testing.T) {
	conn := openSeededConn(t)
	ctx := context.Background()
	if _, err := NewSeeder(conn).Seed(ctx, testPack("v1.0.0")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	provider := NewSQLProvider(conn)

	cases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			"by subject",
			Filter{Subjects: []string{"maths"}},
			[]string{"q-add-1", "q-prime-1"},
		},
		{
			"by key stage",
			Filter{KeyStages: []quiz.KeyStage{3}},
			[]string{"q-cap-1", "q-prime-1"},
		},
		{
			"by difficulty band",
			Filter{DifficultyMin: 2, DifficultyMax: 4},
			[]string{"q-cap-1", "q-prime-1"},
		},
		{
			"by type",
			Filter{Types: []quiz.Kind{quiz.KindNumeric}},
			[]string{"q-add-1"},
		},
		{
			"conjunction is empty",
			Filter{Subjects: []string{"geography"}, Types: []quiz.Kind{quiz.KindNumeric}},
			nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			questions, err := provider.Questions(ctx, tc.filter)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			var got []string
			for _, q := range questions {
				got = append(got, q.ID)
			}
			if strings.Join(got, ",") != strings.Join(tc.want, ",") {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterFromMix(t *testing.T) {
	cfg := mix.Config{
		Subjects:      []string{"maths"},
		KeyStages:     []quiz.KeyStage{2},
		QuestionCount: 5,
		DifficultyMin: 2,
		DifficultyMax: 4,
		Types:         []quiz.Kind{quiz.KindNumeric, quiz.KindText},
	}
	f := FilterFromMix(cfg)
	if len(f.Subjects) != 1 || f.Subjects[0] != "maths" {
		t.Fatalf("subjects = %v", f.Subjects)
	}
	if f.DifficultyMin != 2 || f.DifficultyMax != 4 {
		t.Fatalf("difficulty band = %d..%d", f.DifficultyMin, f.DifficultyMax)
	}
	if len(f.Types) != 2 {
		t.Fatalf("types = %v", f.Types)
	}
}

func TestSeeder_SeedFromFileMissing(t *testing.T) {
	conn := openSeededConn(t)
	_, err := NewSeeder(conn).SeedFromFile(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}
