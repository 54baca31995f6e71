package srs

// Classify turns a raw response outcome into a quality grade.
//
// An incorrect answer is always FAIL. Correct answers default to GOOD and
// are promoted to EASY or demoted to HARD based on response time relative
// to the item's running average (no adjustment while the average is still
// zero). Using a hint downgrades the grade by one step, floored at FAIL.
func Classify(isCorrect bool, responseTimeMs int64, usedHint bool, prior ItemState) Quality {
	if !isCorrect {
		return Fail
	}

	quality := Good
	if prior.AvgResponseTimeMs > 0 {
		ratio := float64(responseTimeMs) / prior.AvgResponseTimeMs
		switch {
		case ratio < 0.5:
			quality = Easy
		case ratio > 2.0:
			quality = Hard
		}
	}

	if usedHint && quality > Fail {
		quality--
	}
	return quality
}
