// Package quiz defines the question and answer model shared by the
// session engine, the content store, and the evaluator.
package quiz

// KeyStage is the curriculum band a question is aimed at (KS1-KS4).
type KeyStage int

const (
	KeyStage1 KeyStage = 1
	KeyStage2 KeyStage = 2
	KeyStage3 KeyStage = 3
	KeyStage4 KeyStage = 4
)

// Valid reports whether ks is one of the four curriculum bands.
func (ks KeyStage) Valid() bool {
	return ks >= KeyStage1 && ks <= KeyStage4
}

// String returns the conventional "KS<n>" label.
func (ks KeyStage) String() string {
	switch ks {
	case KeyStage1:
		return "KS1"
	case KeyStage2:
		return "KS2"
	case KeyStage3:
		return "KS3"
	case KeyStage4:
		return "KS4"
	default:
		return "KS?"
	}
}

// Choice is a single selectable option of a multiple-choice question.
// ID is the canonical identifier; evaluation never looks at Text or
// display position, so choices can be reshuffled freely.
type Choice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is a single quiz item. Difficulty ranges 1 (easy) to 5 (hard).
// Choices is populated only for multiple-choice questions.
type Question struct {
	ID         string
	Subject    string
	KeyStage   KeyStage
	Difficulty int
	Type       Kind
	Prompt     string
	Correct    Answer
	Choices    []Choice
}

// Clone returns a deep copy of the question. Sessions clone their
// question list at creation so later content edits cannot reach into an
// in-progress attempt.
func (q Question) Clone() Question {
	c := q
	if len(q.Choices) > 0 {
		c.Choices = make([]Choice, len(q.Choices))
		copy(c.Choices, q.Choices)
	}
	return c
}
