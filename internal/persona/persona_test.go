package persona_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balloonsight/balloonsight/internal/page"
	"github.com/balloonsight/balloonsight/internal/persona"
)

func docFromBody(t *testing.T, body string) *page.Document {
	t.Helper()
	return page.Parse("<html><body>" + body + "</body></html>")
}

func TestHeuristic_KeywordFamilies(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		archetype string
	}{
		{"documentation keyword", "<p>Read the documentation to get started.</p>", "The Technician"},
		{"install keyword", "<p>Install the agent on every host.</p>", "The Technician"},
		{"buy keyword", "<p>Buy now and save.</p>", "The Merchant"},
		{"pricing matches price", "<p>See our pricing plans.</p>", "The Merchant"},
		{"cart keyword", "<p>Your cart is empty.</p>", "The Merchant"},
		{"research keyword", "<p>Our research shows strong growth.</p>", "The Expert"},
		{"report keyword", "<p>Download the annual report.</p>", "The Expert"},
		{"no keywords", "<p>Welcome to our homepage.</p>", "The Generalist"},
		{"empty page", "", "The Generalist"},
		{"uppercase keyword", "<p>API reference</p>", "The Technician"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := persona.Heuristic(docFromBody(t, tt.body))
			assert.Equal(t, tt.archetype, p.Archetype)
			assert.NotEmpty(t, p.Description)
		})
	}
}

func TestHeuristic_PriorityOrder(t *testing.T) {
	// Technician keywords win over Merchant ones even when both appear.
	p := persona.Heuristic(docFromBody(t, "<p>Buy access to the api today.</p>"))
	assert.Equal(t, "The Technician", p.Archetype)

	// Merchant wins over Expert.
	p = persona.Heuristic(docFromBody(t, "<p>Shop our latest research tools.</p>"))
	assert.Equal(t, "The Merchant", p.Archetype)
}

func TestHeuristic_PrefersMainText(t *testing.T) {
	doc := page.Parse(`<html><body>
		<nav>Shop deals in our cart</nav>
		<main><p>Read the documentation.</p></main>
	</body></html>`)

	p := persona.Heuristic(doc)
	assert.Equal(t, "The Technician", p.Archetype)
}

func TestClassify_NoAPIKeyUsesHeuristic(t *testing.T) {
	c := persona.New(persona.Config{})
	p := c.Classify(context.Background(), docFromBody(t, "<p>Buy now.</p>"))
	assert.Equal(t, "The Merchant", p.Archetype)
}

func completionResponse(content string) string {
	resp := map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-3.5-turbo",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestClassify_ModelResponseParsed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req["model"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionResponse("The Sage|Calm and wise.")))
	}))
	defer srv.Close()

	c := persona.New(persona.Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	p := c.Classify(context.Background(), docFromBody(t, "<p>Buy now.</p>"))

	assert.Equal(t, "The Sage", p.Archetype)
	assert.Equal(t, "Calm and wise.", p.Description)
}

func TestClassify_MalformedResponseFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no pipe", "The Sage. Calm and wise."},
		{"too many fields", "The Sage|Calm|wise"},
		{"empty archetype", "|Calm and wise."},
		{"empty description", "The Sage|   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(completionResponse(tt.content)))
			}))
			defer srv.Close()

			c := persona.New(persona.Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
			p := c.Classify(context.Background(), docFromBody(t, "<p>Buy now.</p>"))
			assert.Equal(t, "The Merchant", p.Archetype)
		})
	}
}

func TestClassify_ServerErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := persona.New(persona.Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	p := c.Classify(context.Background(), docFromBody(t, "<p>Install the cli.</p>"))
	assert.Equal(t, "The Technician", p.Archetype)
}
