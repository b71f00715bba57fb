// Package analyzer implements the AI visibility check engine: four check
// groups evaluated against a parsed page, category scoring, and the overall
// 0-100 visibility score.
package analyzer

// Status is the verdict of a single check or category.
type Status string

const (
	StatusPass    Status = "pass"
	StatusWarning Status = "warning"
	StatusFail    Status = "fail"
)

// Points maps a verdict to its score contribution.
func (s Status) Points() int {
	switch s {
	case StatusPass:
		return 100
	case StatusWarning:
		return 50
	default:
		return 0
	}
}

// Check is one evaluated rule with a human-readable finding.
type Check struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Status  Status `json:"status"`
	Message string `json:"message"`

	// Fix carries remediation text, only set for warning/fail verdicts.
	Fix string `json:"fix,omitempty"`
}

// Category names one of the four fixed check groupings. Downstream consumers
// key off these values, so the set is closed.
type Category string

const (
	CategoryAccessibility     Category = "accessibility"
	CategoryStructuredData    Category = "structuredData"
	CategorySemanticStructure Category = "semanticStructure"
	CategoryContentPersona    Category = "contentPersona"
)

// Categories lists all categories in evaluation order.
var Categories = [4]Category{
	CategoryAccessibility,
	CategoryStructuredData,
	CategorySemanticStructure,
	CategoryContentPersona,
}

// CategoryResult aggregates one check group.
type CategoryResult struct {
	Score  int     `json:"score"`
	Status Status  `json:"status"`
	Checks []Check `json:"checks"`
}

// Persona is the brand-archetype classification attached to a page.
type Persona struct {
	Archetype   string `json:"archetype"`
	Description string `json:"description"`
}

// AnalysisResult is the outcome of one full analysis run. It is constructed
// fresh per run and immutable once returned.
type AnalysisResult struct {
	Score      int                         `json:"score"`
	URL        string                      `json:"url"`
	Persona    Persona                     `json:"persona"`
	Categories map[Category]CategoryResult `json:"categories"`
	RawJSONLD  []any                       `json:"rawJsonLd,omitempty"`
}

// Check constructors keep verdict and fix pairing consistent: a passing
// check never carries remediation text.

func pass(id, label, message string) Check {
	return Check{ID: id, Label: label, Status: StatusPass, Message: message}
}

func warn(id, label, message, fix string) Check {
	return Check{ID: id, Label: label, Status: StatusWarning, Message: message, Fix: fix}
}

func fail(id, label, message, fix string) Check {
	return Check{ID: id, Label: label, Status: StatusFail, Message: message, Fix: fix}
}
