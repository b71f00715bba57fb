package analyzer

import "math"

// CategoryScore reduces a check list to a 0-100 score: the rounded mean of
// per-check points. An empty list scores 0 so the contract stays total.
func CategoryScore(checks []Check) int {
	if len(checks) == 0 {
		return 0
	}
	total := 0
	for _, c := range checks {
		total += c.Status.Points()
	}
	return int(math.Round(float64(total) / float64(len(checks))))
}

// StatusForScore derives the tri-state category status from a score.
// Boundary values resolve to the higher status.
func StatusForScore(score int) Status {
	switch {
	case score >= 80:
		return StatusPass
	case score >= 50:
		return StatusWarning
	default:
		return StatusFail
	}
}

// OverallScore is the unweighted rounded mean of the four category scores.
// All categories contribute equally; weighting is deliberately not exposed.
func OverallScore(accessibility, structuredData, semantic, content int) int {
	sum := accessibility + structuredData + semantic + content
	return int(math.Round(float64(sum) / 4))
}

// categoryResult bundles a check list with its derived score and status.
func categoryResult(checks []Check) CategoryResult {
	if checks == nil {
		checks = []Check{}
	}
	score := CategoryScore(checks)
	return CategoryResult{
		Score:  score,
		Status: StatusForScore(score),
		Checks: checks,
	}
}
