// Package picker selects and orders questions for a session from a
// pre-filtered candidate pool.
package picker

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"quizdeck/internal/mix"
	"quizdeck/internal/quiz"
)

// InsufficientQuestionsError is returned when the candidate pool holds
// fewer questions than the mix asks for. The picker never silently
// truncates; callers must relax their filters or reduce the count.
type InsufficientQuestionsError struct {
	Requested int
	Available int
}

func (e *InsufficientQuestionsError) Error() string {
	return fmt.Sprintf("insufficient questions: requested %d, pool has %d", e.Requested, e.Available)
}

// Picker draws questions without replacement from a candidate pool.
// The zero value uses the shared, auto-seeded source; inject a *rand.Rand
// for reproducible selections.
type Picker struct {
	rng *rand.Rand
}

// New returns a Picker using rng. A nil rng falls back to the package
// source.
func New(rng *rand.Rand) *Picker {
	return &Picker{rng: rng}
}

// Pick returns exactly cfg.QuestionCount questions drawn from pool
// without replacement, every ID unique. With RandomizeOrder the result
// is a uniform random sample in permuted order (Fisher-Yates); without
// it, selection and order are deterministic, ascending by question ID.
// Multiple-choice options are reshuffled independently per question so
// the correct option's position carries no signal.
//
// The config must already have passed Validate; the pool must already be
// filtered by subject, key stage, difficulty, and type.
func (p *Picker) Pick(pool []quiz.Question, cfg mix.Config) ([]quiz.Question, error) {
	n := cfg.QuestionCount
	if len(pool) < n {
		return nil, &InsufficientQuestionsError{Requested: n, Available: len(pool)}
	}

	var picked []quiz.Question
	if cfg.RandomizeOrder {
		perm := p.perm(len(pool))
		picked = make([]quiz.Question, 0, n)
		for _, idx := range perm[:n] {
			picked = append(picked, pool[idx].Clone())
		}
	} else {
		ordered := make([]quiz.Question, len(pool))
		copy(ordered, pool)
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
		picked = make([]quiz.Question, 0, n)
		for _, q := range ordered[:n] {
			picked = append(picked, q.Clone())
		}
	}

	for i := range picked {
		p.shuffleChoices(picked[i].Choices)
	}
	return picked, nil
}

func (p *Picker) perm(n int) []int {
	if p.rng != nil {
		return p.rng.Perm(n)
	}
	return rand.Perm(n)
}

func (p *Picker) shuffleChoices(choices []quiz.Choice) {
	if len(choices) < 2 {
		return
	}
	swap := func(i, j int) { choices[i], choices[j] = choices[j], choices[i] }
	if p.rng != nil {
		p.rng.Shuffle(len(choices), swap)
		return
	}
	rand.Shuffle(len(choices), swap)
}
