package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/balloonsight/balloonsight/internal/analyzer"
)

func TestCategoryScore(t *testing.T) {
	tests := []struct {
		name     string
		statuses []analyzer.Status
		want     int
	}{
		{"all pass", []analyzer.Status{analyzer.StatusPass, analyzer.StatusPass}, 100},
		{"all fail", []analyzer.Status{analyzer.StatusFail, analyzer.StatusFail}, 0},
		{"mixed", []analyzer.Status{analyzer.StatusPass, analyzer.StatusWarning}, 75},
		{"pass warning fail", []analyzer.Status{analyzer.StatusPass, analyzer.StatusWarning, analyzer.StatusFail}, 50},
		{"rounds up", []analyzer.Status{analyzer.StatusPass, analyzer.StatusPass, analyzer.StatusWarning}, 83},
		{"empty list scores zero", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks := make([]analyzer.Check, len(tt.statuses))
			for i, s := range tt.statuses {
				checks[i] = analyzer.Check{ID: "c", Status: s}
			}
			got := analyzer.CategoryScore(checks)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestStatusForScore_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  analyzer.Status
	}{
		{100, analyzer.StatusPass},
		{80, analyzer.StatusPass}, // boundary resolves upward
		{79, analyzer.StatusWarning},
		{50, analyzer.StatusWarning}, // boundary resolves upward
		{49, analyzer.StatusFail},
		{0, analyzer.StatusFail},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, analyzer.StatusForScore(tt.score), "score %d", tt.score)
	}
}

func TestOverallScore_IsRoundedMean(t *testing.T) {
	assert.Equal(t, 50, analyzer.OverallScore(50, 50, 50, 50))
	assert.Equal(t, 63, analyzer.OverallScore(100, 50, 50, 50)) // 62.5 rounds up
	assert.Equal(t, 0, analyzer.OverallScore(0, 0, 0, 0))
	assert.Equal(t, 100, analyzer.OverallScore(100, 100, 100, 100))
	assert.Equal(t, 44, analyzer.OverallScore(25, 25, 50, 75))
}

func TestStatusPoints(t *testing.T) {
	assert.Equal(t, 100, analyzer.StatusPass.Points())
	assert.Equal(t, 50, analyzer.StatusWarning.Points())
	assert.Equal(t, 0, analyzer.StatusFail.Points())
}
