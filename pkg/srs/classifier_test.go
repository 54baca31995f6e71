package srs

import "testing"

// TestClassify_IncorrectAlwaysFails tests that wrong answers grade FAIL
// regardless of speed or hints.
func TestClassify_IncorrectAlwaysFails(t *testing.T) {
	prior := ItemState{AvgResponseTimeMs: 5000}

	if got := Classify(false, 100, false, prior); got != Fail {
		t.Errorf("Classify(incorrect, fast): got %v, want FAIL", got)
	}
	if got := Classify(false, 100, true, prior); got != Fail {
		t.Errorf("Classify(incorrect, hint): got %v, want FAIL", got)
	}
}

// TestClassify_NoAverageDefaultsGood tests that the first response cannot be
// speed-graded.
func TestClassify_NoAverageDefaultsGood(t *testing.T) {
	prior := ItemState{AvgResponseTimeMs: 0}

	if got := Classify(true, 50, false, prior); got != Good {
		t.Errorf("Classify with zero average: got %v, want GOOD", got)
	}
}

// TestClassify_SpeedThresholds tests the response-time ratio boundaries.
func TestClassify_SpeedThresholds(t *testing.T) {
	prior := ItemState{AvgResponseTimeMs: 1000}

	tests := []struct {
		name string
		rtMs int64
		want Quality
	}{
		{"very fast", 400, Easy},      // ratio 0.4 < 0.5
		{"boundary fast", 500, Good},  // ratio 0.5 is not < 0.5
		{"normal", 1000, Good},        // ratio 1.0
		{"boundary slow", 2000, Good}, // ratio 2.0 is not > 2.0
		{"very slow", 2100, Hard},     // ratio 2.1 > 2.0
	}
	for _, tt := range tests {
		if got := Classify(true, tt.rtMs, false, prior); got != tt.want {
			t.Errorf("%s: Classify(correct, %dms): got %v, want %v", tt.name, tt.rtMs, got, tt.want)
		}
	}
}

// TestClassify_HintDowngradesOneGrade tests the hint penalty and its floor.
func TestClassify_HintDowngradesOneGrade(t *testing.T) {
	prior := ItemState{AvgResponseTimeMs: 1000}

	if got := Classify(true, 400, true, prior); got != Good {
		t.Errorf("hint on EASY: got %v, want GOOD", got)
	}
	if got := Classify(true, 1000, true, prior); got != Hard {
		t.Errorf("hint on GOOD: got %v, want HARD", got)
	}
	if got := Classify(true, 2100, true, prior); got != Fail {
		t.Errorf("hint on HARD: got %v, want FAIL", got)
	}
	if got := Classify(false, 2100, true, prior); got != Fail {
		t.Errorf("hint on FAIL: got %v, want FAIL (floored)", got)
	}
}
