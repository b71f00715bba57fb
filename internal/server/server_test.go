package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balloonsight/balloonsight/internal/analyzer"
	"github.com/balloonsight/balloonsight/internal/config"
	"github.com/balloonsight/balloonsight/internal/fetcher"
	"github.com/balloonsight/balloonsight/internal/persona"
	"github.com/balloonsight/balloonsight/internal/server"
)

// newTestStack starts a fake target site and returns a handler wired to
// fetch from it.
func newTestStack(t *testing.T, site http.Handler) (http.Handler, *httptest.Server) {
	t.Helper()

	target := httptest.NewServer(site)
	t.Cleanup(target.Close)

	cfg := config.Default()
	cfg.FetchTimeout = 5 * time.Second
	cfg.RobotsTimeout = 2 * time.Second
	cfg.RequestsPerSecond = 0

	f := fetcher.New(cfg)
	t.Cleanup(f.Close)

	a := analyzer.New(f, persona.New(persona.Config{}))
	return server.New(cfg, f, a).Handler(), target
}

func targetSite(pageHTML, robots string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		if robots == "" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(robots))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pageHTML))
	})
	return mux
}

func TestHealthz(t *testing.T) {
	h, _ := newTestStack(t, targetSite("", ""))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestScrape(t *testing.T) {
	h, target := newTestStack(t, targetSite("<html><body>scraped</body></html>", ""))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scrape?url="+target.URL, nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		HTML   string `json:"html"`
		Status int    `json:"status"`
		Time   int    `json:"time"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "<html><body>scraped</body></html>", resp.HTML)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.GreaterOrEqual(t, resp.Time, 0)
}

func TestScrape_MissingURL(t *testing.T) {
	h, _ := newTestStack(t, targetSite("", ""))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scrape", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing URL parameter")
}

func TestAnalyze(t *testing.T) {
	pageHTML := `<html><head>
		<title>Acme</title>
		<meta property="og:title" content="Acme">
		<script type="application/ld+json">{"@type":"Organization"}</script>
	</head><body><main><h1>Acme builds specialized widgets</h1>
	<p>Updated 2025-04-01.</p></main></body></html>`

	h, target := newTestStack(t, targetSite(pageHTML, "User-agent: *\nAllow: /"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyze?url="+target.URL, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		Result struct {
			Score      int                        `json:"score"`
			URL        string                     `json:"url"`
			Persona    map[string]string          `json:"persona"`
			Categories map[string]json.RawMessage `json:"categories"`
		} `json:"result"`
		Breakdown map[string]int    `json:"scoreBreakdown"`
		QuickWins []json.RawMessage `json:"quickWins"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, target.URL, resp.Result.URL)
	assert.GreaterOrEqual(t, resp.Result.Score, 0)
	assert.LessOrEqual(t, resp.Result.Score, 100)
	assert.Len(t, resp.Result.Categories, 4)
	assert.NotEmpty(t, resp.Result.Persona["archetype"])
	assert.Len(t, resp.QuickWins, 10)
	assert.Contains(t, resp.Breakdown, "overallScore")
}

func TestAnalyze_MissingURL(t *testing.T) {
	h, _ := newTestStack(t, targetSite("", ""))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyze", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_InvalidURLReturnsPlaceholder(t *testing.T) {
	h, _ := newTestStack(t, targetSite("", ""))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyze?url=%25%25%25", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result struct {
			Score      int `json:"score"`
			Categories map[string]struct {
				Checks []struct {
					ID      string `json:"id"`
					Message string `json:"message"`
				} `json:"checks"`
			} `json:"categories"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 0, resp.Result.Score)
	require.Len(t, resp.Result.Categories, 4)
	acc := resp.Result.Categories["accessibility"]
	require.Len(t, acc.Checks, 1)
	assert.Equal(t, "error", acc.Checks[0].ID)
}

func TestAnalyze_UnreachableTargetReturnsPlaceholder(t *testing.T) {
	h, target := newTestStack(t, targetSite("", ""))
	target.Close() // connection refused from here on

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyze?url="+target.URL, nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result struct {
			Score int `json:"score"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Result.Score)
}

func TestRouting_UnknownPath(t *testing.T) {
	h, _ := newTestStack(t, targetSite("", ""))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouting_MethodNotAllowed(t *testing.T) {
	h, _ := newTestStack(t, targetSite("", ""))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
