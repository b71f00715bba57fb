// Package report flattens an analysis into exportable rows and writes them
// to CSV, XLSX or JSON.
package report

import (
	"time"

	"github.com/balloonsight/balloonsight/internal/analyzer"
	"github.com/balloonsight/balloonsight/internal/insights"
)

// Report bundles everything one exported analysis carries.
type Report struct {
	Result    *analyzer.AnalysisResult `json:"result"`
	Breakdown insights.ScoreBreakdown  `json:"scoreBreakdown"`
	QuickWins []insights.QuickWin      `json:"quickWins"`
	CreatedAt time.Time                `json:"createdAt"`
}

// Build assembles a Report.
func Build(res *analyzer.AnalysisResult, breakdown insights.ScoreBreakdown, wins []insights.QuickWin) *Report {
	return &Report{
		Result:    res,
		Breakdown: breakdown,
		QuickWins: wins,
		CreatedAt: time.Now(),
	}
}

// checkColumns is the header row for the per-check table.
var checkColumns = []string{"Category", "Check ID", "Label", "Status", "Message", "Fix"}

// checkRows flattens all categories into rows in evaluation order.
func (r *Report) checkRows() [][]string {
	var rows [][]string
	for _, cat := range analyzer.Categories {
		for _, c := range r.Result.Categories[cat].Checks {
			rows = append(rows, []string{
				string(cat), c.ID, c.Label, string(c.Status), c.Message, c.Fix,
			})
		}
	}
	return rows
}

// quickWinColumns is the header row for the quick-win table.
var quickWinColumns = []string{"Priority", "Title", "Description"}

func (r *Report) quickWinRows() [][]string {
	rows := make([][]string, 0, len(r.QuickWins))
	for _, w := range r.QuickWins {
		rows = append(rows, []string{string(w.Priority), w.Title, w.Description})
	}
	return rows
}
