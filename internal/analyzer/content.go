package analyzer

import (
	"fmt"
	"regexp"

	"github.com/balloonsight/balloonsight/internal/page"
)

// textRatioThreshold is the minimum text-to-markup density considered healthy.
const textRatioThreshold = 0.10

// dateRe matches ISO dates (2024-03-01) or long-form dates (March 1, 2024)
// anywhere in the visible text.
var dateRe = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b|\b(January|February|March|April|May|June|July|August|September|October|November|December)\s\d{1,2},\s\d{4}\b`)

// ContentChecks evaluates text density and content freshness.
func ContentChecks(doc *page.Document) []Check {
	return []Check{
		textRatioCheck(doc),
		freshnessCheck(doc),
	}
}

func textRatioCheck(doc *page.Document) Check {
	const (
		id    = "text-ratio"
		label = "Text-to-HTML Ratio"
	)

	ratio := 0.0
	if doc.InnerHTMLLength > 0 {
		ratio = float64(len(doc.BodyText)) / float64(doc.InnerHTMLLength)
	}

	if ratio > textRatioThreshold {
		return pass(id, label, fmt.Sprintf("Good text density (%.1f%%).", ratio*100))
	}
	return warn(id, label,
		fmt.Sprintf("Low text density (%.1f%%).", ratio*100),
		"Reduce code bloat or increase text content.")
}

func freshnessCheck(doc *page.Document) Check {
	const (
		id    = "date-check"
		label = "Content Freshness"
	)

	if dateRe.MatchString(doc.BodyText) {
		return pass(id, label, "Dates detected in content.")
	}
	return warn(id, label,
		"No dates detected.",
		"Include publication or modified dates for timeliness.")
}
