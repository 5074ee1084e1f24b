package score

import "testing"

func TestCompute(t *testing.T) {
	s := Compute(9, 10)
	if s.Correct != 9 || s.Total != 10 {
		t.Errorf("Score = %+v, want Correct=9 Total=10", s)
	}
	if s.Percentage != 90 {
		t.Errorf("Percentage = %v, want 90", s.Percentage)
	}
}

func TestCompute_EmptyResults(t *testing.T) {
	s := Compute(0, 0)
	if s.Percentage != 0 {
		t.Errorf("Percentage = %v, want 0 for empty results", s.Percentage)
	}
}

func TestThresholds_Level(t *testing.T) {
	tests := []struct {
		percentage float64
		want       Level
	}{
		{100, LevelExcellent},
		{90, LevelExcellent},
		{89.9, LevelGood},
		{75, LevelGood},
		{74.9, LevelFair},
		{50, LevelFair},
		{49.9, LevelNeedsPractice},
		{0, LevelNeedsPractice},
	}

	for _, tt := range tests {
		if got := DefaultThresholds.Level(tt.percentage); got != tt.want {
			t.Errorf("Level(%v) = %v, want %v", tt.percentage, got, tt.want)
		}
	}
}

func TestLevel_Ordering(t *testing.T) {
	// Tiers are ordinal: comparisons must be meaningful.
	if !(LevelNeedsPractice < LevelFair && LevelFair < LevelGood && LevelGood < LevelExcellent) {
		t.Error("levels are not strictly ordered")
	}
}
