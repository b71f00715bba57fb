package insights

import (
	"github.com/balloonsight/balloonsight/internal/analyzer"
	"github.com/balloonsight/balloonsight/internal/page"
)

// Priority ranks a quick win.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// QuickWin is one actionable remediation item for the report.
type QuickWin struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// quickWinCount fixes the report section at exactly ten items; the list is
// padded with a generic reminder when fewer conditions trigger.
const quickWinCount = 10

// QuickWins derives a prioritized remediation list from the document and the
// analysis. The evaluation order is fixed so output stays deterministic.
func QuickWins(doc *page.Document, res *analyzer.AnalysisResult) []QuickWin {
	wins := make([]QuickWin, 0, quickWinCount)

	// High priority
	if doc.MetaDescription == "" {
		wins = append(wins, QuickWin{
			Title:       "Add Meta Description",
			Description: "Create a compelling 150-160 character meta description that clearly communicates your value proposition.",
			Priority:    PriorityHigh,
		})
	}
	if schemaPoints(res) == 0 {
		wins = append(wins, QuickWin{
			Title:       "Add FAQ Schema",
			Description: "Implement FAQPage schema markup to help AI systems understand your frequently asked questions.",
			Priority:    PriorityHigh,
		})
	}
	if weakH1(doc) {
		wins = append(wins, QuickWin{
			Title:       "Strengthen H1 Tag",
			Description: "Ensure you have a clear, descriptive H1 tag that communicates your main value proposition.",
			Priority:    PriorityHigh,
		})
	}

	// Medium priority
	if doc.Count("h2") < 3 {
		wins = append(wins, QuickWin{
			Title:       "Add More H2 Headings",
			Description: "Add at least 3-5 H2 headings to create better content structure and hierarchy.",
			Priority:    PriorityMedium,
		})
	}
	if doc.ImagesMissingAlt > 0 {
		wins = append(wins, QuickWin{
			Title:       "Improve Image ALT Tags",
			Description: "Add descriptive ALT text to all images to improve accessibility and AI understanding.",
			Priority:    PriorityMedium,
		})
	}
	if robotsBlocked(res) {
		wins = append(wins, QuickWin{
			Title:       "Unblock AI Crawlers",
			Description: "Remove robots.txt Disallow rules for GPTBot, CCBot, and Google-Extended so AI systems can read your site.",
			Priority:    PriorityMedium,
		})
	}
	if doc.InternalLinks < 5 {
		wins = append(wins, QuickWin{
			Title:       "Add Internal Links",
			Description: "Add more internal links between related pages to improve site structure and navigation.",
			Priority:    PriorityMedium,
		})
	}

	// Low priority
	if len(doc.Title) < 30 {
		wins = append(wins, QuickWin{
			Title:       "Optimize Page Title",
			Description: "Ensure your page title is 50-60 characters and includes your primary keyword.",
			Priority:    PriorityLow,
		})
	}
	if len(doc.OpenGraph) == 0 {
		wins = append(wins, QuickWin{
			Title:       "Add Open Graph Tags",
			Description: "Add Open Graph meta tags for better social media sharing and AI understanding.",
			Priority:    PriorityLow,
		})
	}
	if doc.AboutLinks == 0 {
		wins = append(wins, QuickWin{
			Title:       "Improve About Page",
			Description: "Create or enhance your About page with clear information about your expertise and credentials.",
			Priority:    PriorityLow,
		})
	}

	for len(wins) < quickWinCount {
		wins = append(wins, QuickWin{
			Title:       "Review Content Quality",
			Description: "Regularly review and update your content to ensure it remains fresh and relevant.",
			Priority:    PriorityLow,
		})
	}

	return wins[:quickWinCount]
}

// weakH1 reports a missing H1 or one whose text is too short to carry a
// value proposition.
func weakH1(doc *page.Document) bool {
	if len(doc.H1) == 0 {
		return true
	}
	return len(doc.H1[0]) < 10
}

func robotsBlocked(res *analyzer.AnalysisResult) bool {
	if res == nil {
		return false
	}
	for _, c := range res.Categories[analyzer.CategoryAccessibility].Checks {
		if c.ID == "robots-txt" {
			return c.Status == analyzer.StatusFail
		}
	}
	return false
}
