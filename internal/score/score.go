// Package score aggregates answer results into a score and a
// performance tier. Everything here is pure; persistence belongs to the
// profile layer.
package score

// Score is the raw outcome of a completed session.
type Score struct {
	Correct    int
	Total      int
	Percentage float64
}

// Compute builds a Score from a correct count and a total. A zero total
// yields a zero percentage rather than dividing by zero.
func Compute(correct, total int) Score {
	s := Score{Correct: correct, Total: total}
	if total > 0 {
		s.Percentage = float64(correct) / float64(total) * 100
	}
	return s
}

// Level is an ordinal performance tier derived from the percentage.
type Level int

const (
	LevelNeedsPractice Level = iota
	LevelFair
	LevelGood
	LevelExcellent
)

// String returns a human-readable label for the level.
func (l Level) String() string {
	switch l {
	case LevelExcellent:
		return "Excellent"
	case LevelGood:
		return "Good"
	case LevelFair:
		return "Fair"
	default:
		return "Needs Practice"
	}
}

// Thresholds are the percentage cut points between tiers. A percentage
// at or above a cut point earns that tier.
type Thresholds struct {
	Excellent float64
	Good      float64
	Fair      float64
}

// DefaultThresholds are the standard cut points. They are plain values,
// not policy baked into the mapping, so deployments can override them
// via configuration.
var DefaultThresholds = Thresholds{
	Excellent: 90,
	Good:      75,
	Fair:      50,
}

// Level maps a percentage onto a tier using these thresholds.
func (t Thresholds) Level(percentage float64) Level {
	switch {
	case percentage >= t.Excellent:
		return LevelExcellent
	case percentage >= t.Good:
		return LevelGood
	case percentage >= t.Fair:
		return LevelFair
	default:
		return LevelNeedsPractice
	}
}
