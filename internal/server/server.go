// Package server exposes the analyzer over a small JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/balloonsight/balloonsight/internal/analyzer"
	"github.com/balloonsight/balloonsight/internal/config"
	"github.com/balloonsight/balloonsight/internal/fetcher"
	"github.com/balloonsight/balloonsight/internal/insights"
	"github.com/balloonsight/balloonsight/internal/page"
)

// Server wires the fetcher and analyzer behind HTTP handlers.
type Server struct {
	cfg      *config.Config
	fetcher  *fetcher.Fetcher
	analyzer *analyzer.Analyzer
	http     *http.Server
}

// New creates a Server.
func New(cfg *config.Config, f *fetcher.Fetcher, a *analyzer.Analyzer) *Server {
	s := &Server{cfg: cfg, fetcher: f, analyzer: a}
	s.http = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the route table, exposed separately for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/scrape", s.handleScrape)
	mux.HandleFunc("GET /api/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// scrapeResponse mirrors the scrape endpoint's historical wire shape.
type scrapeResponse struct {
	HTML   string `json:"html"`
	Status int    `json:"status"`
	Time   int    `json:"time"`
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, "Missing URL parameter")
		return
	}

	normalized, _, err := analyzer.NormalizeURL(rawURL)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid URL")
		return
	}

	res, err := s.fetcher.FetchPage(r.Context(), normalized)
	if err != nil {
		log.Printf("scrape failed for %s: %v", normalized, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, scrapeResponse{
		HTML:   res.HTML,
		Status: res.StatusCode,
		Time:   res.ResponseTimeMs,
	})
}

// analyzeResponse carries the full analysis plus report extras.
type analyzeResponse struct {
	Result    *analyzer.AnalysisResult `json:"result"`
	Breakdown insights.ScoreBreakdown  `json:"scoreBreakdown"`
	QuickWins []insights.QuickWin      `json:"quickWins"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, "Missing URL parameter")
		return
	}

	normalized, _, err := analyzer.NormalizeURL(rawURL)
	if err != nil {
		// The caller still gets a complete, zero-score result rather than a
		// blank report.
		writeJSON(w, http.StatusOK, placeholderResponse(rawURL, "Invalid URL."))
		return
	}

	pageRes, err := s.fetcher.FetchPage(r.Context(), normalized)
	if err != nil {
		log.Printf("fetch failed for %s: %v", normalized, err)
		writeJSON(w, http.StatusOK, placeholderResponse(normalized, "Could not fetch the page."))
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), pageRes.HTML, normalized, pageRes.ResponseTimeMs)
	if err != nil {
		writeJSON(w, http.StatusOK, placeholderResponse(normalized, "Could not analyze the page."))
		return
	}

	doc := page.Parse(pageRes.HTML)
	writeJSON(w, http.StatusOK, analyzeResponse{
		Result:    result,
		Breakdown: insights.Breakdown(doc, result),
		QuickWins: insights.QuickWins(doc, result),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func placeholderResponse(url, message string) analyzeResponse {
	res := analyzer.ErrorResult(url, message)
	return analyzeResponse{
		Result:    res,
		QuickWins: []insights.QuickWin{},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
