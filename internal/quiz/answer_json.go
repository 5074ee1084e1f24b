package quiz

import (
	"encoding/json"
	"fmt"
)

// answerEnvelope is the kind-tagged wire form of an Answer, used for
// seed content and persisted results.
type answerEnvelope struct {
	Kind     Kind   `json:"kind"`
	Text     string `json:"text,omitempty"`
	ChoiceID string `json:"choice_id,omitempty"`
	Value    *bool  `json:"value,omitempty"`
	Number   string `json:"number,omitempty"`
}

// MarshalAnswer encodes an Answer into its tagged JSON form.
func MarshalAnswer(a Answer) ([]byte, error) {
	env := answerEnvelope{Kind: a.Kind()}
	switch v := a.(type) {
	case TextAnswer:
		env.Text = v.Text
	case ChoiceAnswer:
		env.ChoiceID = v.ChoiceID
	case TrueFalseAnswer:
		val := v.Value
		env.Value = &val
	case NumericAnswer:
		env.Number = v.Value
	default:
		return nil, fmt.Errorf("unknown answer kind %q", a.Kind())
	}
	return json.Marshal(env)
}

// UnmarshalAnswer decodes the tagged JSON form back into an Answer.
func UnmarshalAnswer(data []byte) (Answer, error) {
	var env answerEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode answer: %w", err)
	}
	switch env.Kind {
	case KindText:
		return TextAnswer{Text: env.Text}, nil
	case KindMultipleChoice:
		return ChoiceAnswer{ChoiceID: env.ChoiceID}, nil
	case KindTrueFalse:
		if env.Value == nil {
			return nil, fmt.Errorf("true_false answer missing value")
		}
		return TrueFalseAnswer{Value: *env.Value}, nil
	case KindNumeric:
		return NumericAnswer{Value: env.Number}, nil
	default:
		return nil, fmt.Errorf("unknown answer kind %q", env.Kind)
	}
}
