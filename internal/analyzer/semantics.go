package analyzer

import (
	"fmt"
	"strings"

	"github.com/balloonsight/balloonsight/internal/page"
)

// semanticTags are the HTML5 sectioning elements counted toward coverage.
var semanticTags = []string{"article", "main", "nav", "aside"}

// SemanticChecks evaluates HTML5 sectioning-tag coverage and H1 uniqueness.
func SemanticChecks(doc *page.Document) []Check {
	return []Check{
		semanticTagsCheck(doc),
		h1Check(doc),
	}
}

func semanticTagsCheck(doc *page.Document) Check {
	const (
		id    = "semantic-tags"
		label = "HTML5 Semantic Tags"
	)

	var found []string
	for _, tag := range semanticTags {
		if doc.Count(tag) > 0 {
			found = append(found, tag)
		}
	}

	if len(found) >= 3 {
		return pass(id, label,
			fmt.Sprintf("Good use of semantic tags (%s).", strings.Join(found, ", ")))
	}

	listed := strings.Join(found, ", ")
	if listed == "" {
		listed = "none"
	}
	return warn(id, label,
		fmt.Sprintf("Few semantic tags found (only %s).", listed),
		"Wrap content in <main>, <article>, <nav>, etc.")
}

func h1Check(doc *page.Document) Check {
	const (
		id    = "h1-check"
		label = "H1 Tag Presence"
	)

	switch count := doc.Count("h1"); {
	case count == 1:
		return pass(id, label, "Exactly one H1 tag found.")
	case count == 0:
		return fail(id, label,
			"No H1 tag found.",
			"Add a single H1 tag representing the page title.")
	default:
		return warn(id, label,
			"Multiple H1 tags found.",
			"Ensure only one H1 exists per page for clear hierarchy.")
	}
}
