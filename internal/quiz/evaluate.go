package quiz

import (
	"strconv"
	"strings"
)

// Evaluate compares a submitted answer against the correct one.
//
// Normalization rules:
//   - Text: whitespace is trimmed, comparison is case-insensitive, no
//     fuzzy matching.
//   - Multiple choice / true-false: canonical identifiers only, never
//     display text or position, so reshuffled choices evaluate the same.
//   - Numeric: both sides are parsed and compared numerically; equality
//     is exact after normalization ("3.50" matches "3.5").
//
// A submitted answer of a different kind than the correct one is simply
// incorrect, never an error.
func Evaluate(correct, submitted Answer) bool {
	switch c := correct.(type) {
	case TextAnswer:
		s, ok := submitted.(TextAnswer)
		if !ok {
			return false
		}
		return normalizeText(c.Text) == normalizeText(s.Text)

	case ChoiceAnswer:
		s, ok := submitted.(ChoiceAnswer)
		if !ok {
			return false
		}
		return c.ChoiceID == s.ChoiceID

	case TrueFalseAnswer:
		s, ok := submitted.(TrueFalseAnswer)
		if !ok {
			return false
		}
		return c.Value == s.Value

	case NumericAnswer:
		s, ok := submitted.(NumericAnswer)
		if !ok {
			return false
		}
		cn, err := normalizeNumber(c.Value)
		if err != nil {
			return false
		}
		sn, err := normalizeNumber(s.Value)
		if err != nil {
			return false
		}
		return cn == sn
	}
	return false
}

// normalizeText trims surrounding whitespace and lowercases.
func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeNumber parses s and reformats it canonically, so trailing
// zeros and leading zeros are ignored ("007" matches "7").
func normalizeNumber(s string) (string, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}
