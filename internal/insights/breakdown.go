// Package insights derives deterministic report extras from an analysis:
// a five-dimension score breakdown and a prioritized quick-win list.
package insights

import (
	"math"
	"regexp"

	"github.com/balloonsight/balloonsight/internal/analyzer"
	"github.com/balloonsight/balloonsight/internal/page"
)

// ScoreBreakdown decomposes visibility into five 0-100 dimensions.
type ScoreBreakdown struct {
	ContentClarityScore   int `json:"contentClarityScore"`
	SchemaScore           int `json:"schemaScore"`
	MetadataScore         int `json:"metadataScore"`
	AIReadabilityScore    int `json:"aiReadabilityScore"`
	PersonaAlignmentScore int `json:"personaAlignmentScore"`
	OverallScore          int `json:"overallScore"`
}

var (
	valuePropRe   = regexp.MustCompile(`(?i)value|benefit|solution|problem|help|serve`)
	audienceRe    = regexp.MustCompile(`(?i)for|target|audience|customers|clients`)
	positioningRe = regexp.MustCompile(`(?i)unique|different|best|leading|specialized`)
)

// readabilityTags extends the four sectioning tags with <section> for the
// readability dimension only; the semantic-tags check keeps its own list.
var readabilityTags = []string{"article", "main", "nav", "aside", "section"}

// Breakdown computes the score breakdown from the parsed document and the
// analysis result. Every dimension is clamped to [0,100].
func Breakdown(doc *page.Document, res *analyzer.AnalysisResult) ScoreBreakdown {
	// Content clarity: title, meta description, H1 and H2 coverage.
	clarity := 0
	if doc.Title != "" {
		clarity += 25
	}
	if doc.MetaDescription != "" {
		clarity += 25
	}
	if doc.Count("h1") > 0 {
		clarity += 25
	}
	if doc.Count("h2") >= 3 {
		clarity += 25
	}

	// Schema: straight mapping from the structured-data verdicts.
	schema := schemaPoints(res)

	// Metadata: title tag, meta description, any OG tag.
	metadata := 0
	if doc.Title != "" {
		metadata += 40
	}
	if doc.MetaDescription != "" {
		metadata += 40
	}
	if len(doc.OpenGraph) > 0 {
		metadata += 20
	}

	// AI readability: sectioning coverage, text density, structured headings.
	sectioning := 0
	for _, tag := range readabilityTags {
		if doc.Count(tag) > 0 {
			sectioning++
		}
	}
	ratio := 0.0
	if doc.InnerHTMLLength > 0 {
		ratio = float64(len(doc.BodyText)) / float64(doc.InnerHTMLLength)
	}
	readability := clampInt(sectioning*20, 0, 40) + clampInt(int(math.Floor(ratio*100)), 0, 30)
	if doc.Count("h1") > 0 && doc.Count("h2") >= 2 {
		readability += 30
	}

	// Persona alignment: value proposition, audience, positioning signals.
	alignment := 0
	if valuePropRe.MatchString(doc.BodyText) {
		alignment += 35
	}
	if audienceRe.MatchString(doc.BodyText) {
		alignment += 35
	}
	if positioningRe.MatchString(doc.BodyText) {
		alignment += 30
	}

	overall := int(math.Round(float64(clarity+schema+metadata+readability+alignment) / 5))

	return ScoreBreakdown{
		ContentClarityScore:   clampInt(clarity, 0, 100),
		SchemaScore:           clampInt(schema, 0, 100),
		MetadataScore:         clampInt(metadata, 0, 100),
		AIReadabilityScore:    clampInt(readability, 0, 100),
		PersonaAlignmentScore: clampInt(alignment, 0, 100),
		OverallScore:          clampInt(overall, 0, 100),
	}
}

// schemaPoints maps the structured-data checks onto the schema dimension:
// key schemas found = 100, JSON-LD without key schemas = 50, none = 0.
func schemaPoints(res *analyzer.AnalysisResult) int {
	if res == nil {
		return 0
	}
	for _, c := range res.Categories[analyzer.CategoryStructuredData].Checks {
		if c.ID == "schema-types" {
			if c.Status == analyzer.StatusPass {
				return 100
			}
			return 50
		}
	}
	return 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
