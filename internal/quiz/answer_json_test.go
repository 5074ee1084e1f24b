package quiz

import "testing"

func TestAnswerJSONRoundTrip(t *testing.T) {
	answers := []Answer{
		TextAnswer{Text: "Paris"},
		ChoiceAnswer{ChoiceID: "c2"},
		TrueFalseAnswer{Value: false},
		NumericAnswer{Value: "3.5"},
	}

	for _, a := range answers {
		data, err := MarshalAnswer(a)
		if err != nil {
			t.Fatalf("marshal %v: %v", a, err)
		}
		back, err := UnmarshalAnswer(data)
		if err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != a {
			t.Errorf("round trip changed answer: got %#v, want %#v", back, a)
		}
	}
}

func TestUnmarshalAnswer_UnknownKind(t *testing.T) {
	if _, err := UnmarshalAnswer([]byte(`{"kind":"essay"}`)); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestUnmarshalAnswer_TrueFalseMissingValue(t *testing.T) {
	if _, err := UnmarshalAnswer([]byte(`{"kind":"true_false"}`)); err == nil {
		t.Error("expected error for missing boolean value")
	}
}
