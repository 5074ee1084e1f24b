package quiz

// Kind identifies the answer shape of a question. It doubles as the
// question type: a question is answered in exactly one kind.
type Kind string

const (
	KindText           Kind = "text"
	KindMultipleChoice Kind = "multiple_choice"
	KindTrueFalse      Kind = "true_false"
	KindNumeric        Kind = "numeric"
)

// AllKinds returns every answer kind.
func AllKinds() []Kind {
	return []Kind{KindText, KindMultipleChoice, KindTrueFalse, KindNumeric}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindMultipleChoice, KindTrueFalse, KindNumeric:
		return true
	}
	return false
}

// Answer is a closed sum over the supported answer kinds. The sealed
// marker method keeps the set of implementations inside this package, so
// the evaluator's type switch stays exhaustive: adding a kind means
// adding a type here and a case there, checked at compile time.
type Answer interface {
	Kind() Kind
	isAnswer()
}

// TextAnswer is a free-text answer.
type TextAnswer struct {
	Text string
}

func (TextAnswer) Kind() Kind { return KindText }
func (TextAnswer) isAnswer()  {}

// ChoiceAnswer selects a multiple-choice option by its canonical ID.
type ChoiceAnswer struct {
	ChoiceID string
}

func (ChoiceAnswer) Kind() Kind { return KindMultipleChoice }
func (ChoiceAnswer) isAnswer()  {}

// TrueFalseAnswer is a boolean answer.
type TrueFalseAnswer struct {
	Value bool
}

func (TrueFalseAnswer) Kind() Kind { return KindTrueFalse }
func (TrueFalseAnswer) isAnswer()  {}

// NumericAnswer carries the number as entered. It is parsed at
// evaluation time so "3.50" and "3.5" compare equal.
type NumericAnswer struct {
	Value string
}

func (NumericAnswer) Kind() Kind { return KindNumeric }
func (NumericAnswer) isAnswer()  {}
