package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/balloonsight/balloonsight/internal/page"
)

// ErrInvalidURL is returned when the source URL cannot be normalized into a
// usable http(s) URL. This is the only hard-failure input condition; every
// other failure mode degrades into a check verdict or a fallback persona.
var ErrInvalidURL = errors.New("invalid source URL")

// PersonaClassifier determines the brand archetype for a page. It must never
// fail; implementations fall back to a deterministic heuristic.
type PersonaClassifier interface {
	Classify(ctx context.Context, doc *page.Document) Persona
}

// Analyzer runs the full check engine against fetched HTML.
type Analyzer struct {
	robots     RobotsSource
	classifier PersonaClassifier
}

// New creates an Analyzer with the given robots.txt source and persona
// classifier.
func New(robots RobotsSource, classifier PersonaClassifier) *Analyzer {
	return &Analyzer{robots: robots, classifier: classifier}
}

// Analyze evaluates the four check groups and the persona classification for
// one page and assembles the final result. The HTML must already be fetched;
// only robots.txt (and the optional persona call) touch the network.
// responseTimeMs <= 0 skips the TTFB check.
func (a *Analyzer) Analyze(ctx context.Context, rawHTML, sourceURL string, responseTimeMs int) (*AnalysisResult, error) {
	normalized, origin, err := NormalizeURL(sourceURL)
	if err != nil {
		return nil, err
	}

	doc := page.Parse(rawHTML)

	// The three offline groups are pure functions of the document. The
	// accessibility group and the persona classifier may block on the
	// network, so they run concurrently and join before assembly.
	var (
		accessibility []Check
		persona       Persona
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		accessibility = AccessibilityChecks(gctx, a.robots, origin, responseTimeMs)
		return nil
	})
	g.Go(func() error {
		persona = a.classifier.Classify(gctx, doc)
		return nil
	})

	structuredData, rawJSONLD := StructuredDataChecks(doc)
	semantic := SemanticChecks(doc)
	content := ContentChecks(doc)

	// Group functions never return errors; the errgroup is purely a join
	// point with context propagation.
	_ = g.Wait()

	categories := map[Category]CategoryResult{
		CategoryAccessibility:     categoryResult(accessibility),
		CategoryStructuredData:    categoryResult(structuredData),
		CategorySemanticStructure: categoryResult(semantic),
		CategoryContentPersona:    categoryResult(content),
	}

	return &AnalysisResult{
		Score: OverallScore(
			categories[CategoryAccessibility].Score,
			categories[CategoryStructuredData].Score,
			categories[CategorySemanticStructure].Score,
			categories[CategoryContentPersona].Score,
		),
		URL:        normalized,
		Persona:    persona,
		Categories: categories,
		RawJSONLD:  rawJSONLD,
	}, nil
}

// NormalizeURL ensures the source URL carries a scheme (https:// is assumed
// when absent) and returns both the normalized URL and its origin.
func NormalizeURL(sourceURL string) (normalized, origin string, err error) {
	trimmed := strings.TrimSpace(sourceURL)
	if trimmed == "" {
		return "", "", fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	if !strings.HasPrefix(trimmed, "http") {
		trimmed = "https://" + trimmed
	}

	u, parseErr := url.Parse(trimmed)
	if parseErr != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidURL, parseErr)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidURL, sourceURL)
	}

	return u.String(), u.Scheme + "://" + u.Host, nil
}

// ErrorResult builds the zero-score placeholder returned by the application
// layer when the engine cannot run at all, carrying a single diagnostic check
// instead of a blank report.
func ErrorResult(sourceURL, message string) *AnalysisResult {
	failed := func(checks []Check) CategoryResult {
		if checks == nil {
			checks = []Check{}
		}
		return CategoryResult{Score: 0, Status: StatusFail, Checks: checks}
	}

	return &AnalysisResult{
		Score:   0,
		URL:     sourceURL,
		Persona: Persona{Archetype: "Unknown", Description: "Could not analyze."},
		Categories: map[Category]CategoryResult{
			CategoryAccessibility: failed([]Check{
				{ID: "error", Label: "Error", Status: StatusFail, Message: message},
			}),
			CategoryStructuredData:    failed(nil),
			CategorySemanticStructure: failed(nil),
			CategoryContentPersona:    failed(nil),
		},
	}
}
