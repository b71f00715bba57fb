// Package persona classifies a page into a brand archetype, preferring an
// external text-generation call and falling back to a keyword heuristic.
package persona

import (
	"context"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/balloonsight/balloonsight/internal/analyzer"
	"github.com/balloonsight/balloonsight/internal/page"
)

// systemPrompt fixes the response contract for the text-generation call: a
// single pipe-delimited line.
const systemPrompt = "You are an expert brand strategist. Analyze the provided website text. " +
	"Identify the 'Brand Archetype' (e.g. The Sage, The Explorer, The Jester). " +
	"Provide the archetype name and a 1-sentence description of their tone. " +
	"Format: Archetype Name|Description"

// Body-text limits for the model input. The classifier samples the first
// sampleLimit characters and the request truncates again at promptLimit.
const (
	sampleLimit = 1500
	promptLimit = 2000
)

// Fallback archetypes, checked in priority order. First match wins; a page
// matching both "api" and "buy" is a Technician, never a Merchant.
var archetypeRules = []struct {
	keywords []string
	persona  analyzer.Persona
}{
	{
		keywords: []string{"documentation", "api", "install"},
		persona: analyzer.Persona{
			Archetype:   "The Technician",
			Description: "Technical, precise, and instructional. Focuses on 'how-to'.",
		},
	},
	{
		keywords: []string{"buy", "price", "shop", "cart"},
		persona: analyzer.Persona{
			Archetype:   "The Merchant",
			Description: "Transactional, product-focused. Focuses on value and conversion.",
		},
	},
	{
		keywords: []string{"research", "study", "analysis", "report"},
		persona: analyzer.Persona{
			Archetype:   "The Expert",
			Description: "Authoritative, data-driven, and detailed. Focuses on credibility.",
		},
	},
}

// generalist is the terminal fallback when no keyword family matches.
var generalist = analyzer.Persona{
	Archetype:   "The Generalist",
	Description: "Balanced mix of information and engagement. Adapts to a broad audience.",
}

// Config carries the classifier's explicit configuration. Credential
// presence is a config value, not ambient environment state, so both code
// paths stay unit-testable.
type Config struct {
	// APIKey enables the text-generation path when non-empty.
	APIKey string

	// Model used for the completion call.
	Model string

	// Timeout bounds each completion call.
	Timeout time.Duration

	// BaseURL overrides the API endpoint (tests point it at a local server).
	BaseURL string
}

// Classifier determines a page's brand archetype. It never returns an error:
// any failure on the primary path falls through to the heuristic.
type Classifier struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// New creates a Classifier. With an empty API key only the deterministic
// fallback path is used.
func New(cfg Config) *Classifier {
	c := &Classifier{
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
	if c.model == "" {
		c.model = openai.GPT3Dot5Turbo
	}
	if c.timeout <= 0 {
		c.timeout = 15 * time.Second
	}

	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		c.client = openai.NewClientWithConfig(clientCfg)
	}

	return c
}

// Classify returns the archetype for a page. Worst case it returns the
// Generalist fallback; it never raises.
func (c *Classifier) Classify(ctx context.Context, doc *page.Document) analyzer.Persona {
	if c.client != nil {
		if p, ok := c.classifyWithModel(ctx, doc.BodyText); ok {
			return p
		}
	}
	return Heuristic(doc)
}

// classifyWithModel asks the text-generation service for an
// "Archetype|Description" line. Any network, auth or parse failure reports
// not-ok so the caller falls through to the heuristic.
func (c *Classifier) classifyWithModel(ctx context.Context, bodyText string) (analyzer.Persona, bool) {
	sample := truncate(bodyText, sampleLimit)

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: truncate(sample, promptLimit)},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		return analyzer.Persona{}, false
	}

	parts := strings.Split(resp.Choices[0].Message.Content, "|")
	if len(parts) != 2 {
		return analyzer.Persona{}, false
	}

	archetype := strings.TrimSpace(parts[0])
	description := strings.TrimSpace(parts[1])
	if archetype == "" || description == "" {
		return analyzer.Persona{}, false
	}

	return analyzer.Persona{Archetype: archetype, Description: description}, true
}

// Heuristic is the deterministic fallback: it scans the text inside <main>
// (the whole body when the page has none) for keyword families in fixed
// priority order.
func Heuristic(doc *page.Document) analyzer.Persona {
	text := doc.MainText
	if text == "" {
		text = doc.BodyText
	}
	text = strings.ToLower(text)

	for _, rule := range archetypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.persona
			}
		}
	}
	return generalist
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
