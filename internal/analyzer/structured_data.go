package analyzer

import (
	"encoding/json"
	"fmt"

	"github.com/balloonsight/balloonsight/internal/page"
)

// keySchemaTypes are the high-value schema.org types AI systems lean on.
var keySchemaTypes = map[string]bool{
	"Organization": true,
	"Product":      true,
	"Article":      true,
	"FAQPage":      true,
}

// StructuredDataChecks evaluates JSON-LD presence, key schema types and Open
// Graph tags. It also returns the successfully parsed JSON-LD payloads;
// malformed blocks are skipped individually and never abort the run.
func StructuredDataChecks(doc *page.Document) ([]Check, []any) {
	var checks []Check

	rawJSONLD := parseJSONLD(doc.JSONLDBlocks)
	blockCount := len(doc.JSONLDBlocks)

	if blockCount > 0 {
		checks = append(checks, pass("json-ld", "JSON-LD Presence",
			fmt.Sprintf("Found %d JSON-LD scripts.", blockCount)))
		checks = append(checks, schemaTypesCheck(rawJSONLD))
	} else {
		checks = append(checks, fail("json-ld", "JSON-LD Presence",
			"No JSON-LD structured data found.",
			"Add <script type='application/ld+json'> tags with schema.org data."))
	}

	if doc.OpenGraph["og:title"] != "" {
		checks = append(checks, pass("meta-og", "Open Graph Tags", "Open Graph tags detected."))
	} else {
		checks = append(checks, warn("meta-og", "Open Graph Tags",
			"Missing Open Graph tags.",
			"Add og:title, og:description, and og:image tags."))
	}

	return checks, rawJSONLD
}

// parseJSONLD unmarshals each script body, dropping blocks that fail to
// parse. The skip-and-continue path is deliberate: one broken block must not
// hide valid siblings.
func parseJSONLD(blocks []string) []any {
	parsed := make([]any, 0, len(blocks))
	for _, block := range blocks {
		var data any
		if err := json.Unmarshal([]byte(block), &data); err != nil {
			continue
		}
		parsed = append(parsed, data)
	}
	return parsed
}

func schemaTypesCheck(payloads []any) Check {
	const (
		id    = "schema-types"
		label = "Key Schema Types"
	)

	for _, payload := range payloads {
		obj, ok := payload.(map[string]any)
		if !ok {
			continue
		}
		if t, ok := obj["@type"].(string); ok && keySchemaTypes[t] {
			return pass(id, label, "Found Organization, Product, Article, or FAQPage schema.")
		}
	}

	return warn(id, label,
		"No high-value schemas (Product, Article, etc.) found.",
		"Add structured data for your specific content type.")
}
