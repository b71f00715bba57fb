// Package fetcher performs the outbound HTTP requests an analysis needs:
// the target page itself and the site's robots.txt.
package fetcher

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/balloonsight/balloonsight/internal/config"
)

// Fetcher issues rate-limited HTTP requests with an identifying User-Agent.
type Fetcher struct {
	client        *http.Client
	transport     *http.Transport
	limiter       *rate.Limiter
	userAgent     string
	robotsTimeout time.Duration
	maxBodySize   int64
}

// New creates a Fetcher from config.
func New(cfg *config.Config) *Fetcher {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		burst = int(cfg.RequestsPerSecond) + 1
	}

	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.FetchTimeout,
		},
		transport:     transport,
		limiter:       rate.NewLimiter(limit, burst),
		userAgent:     cfg.UserAgent,
		robotsTimeout: cfg.RobotsTimeout,
		maxBodySize:   cfg.MaxBodySize,
	}
}

// PageResult is the outcome of fetching the target page.
type PageResult struct {
	// Raw HTML body
	HTML string

	// Final HTTP status after redirects
	StatusCode int

	// Elapsed time until response headers arrived, in milliseconds.
	// Feeds the TTFB check.
	ResponseTimeMs int

	// URL after redirects
	FinalURL string
}

// FetchPage GETs the target page and measures the time to first byte.
func (f *Fetcher) FetchPage(ctx context.Context, rawURL string) (*PageResult, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	f.setRequestHeaders(req)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, categorizeError(err)
	}
	defer resp.Body.Close()
	ttfb := time.Since(start)

	body, err := f.readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	return &PageResult{
		HTML:           string(body),
		StatusCode:     resp.StatusCode,
		ResponseTimeMs: int(ttfb.Milliseconds()),
		FinalURL:       resp.Request.URL.String(),
	}, nil
}

// FetchRobots GETs {origin}/robots.txt with its own bounded timeout. It
// satisfies analyzer.RobotsSource: transport failures surface as errors, any
// HTTP response (including 404) comes back as status+body for the check to
// interpret.
func (f *Fetcher) FetchRobots(ctx context.Context, origin string) (int, string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return 0, "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.robotsTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	f.setRequestHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, "", categorizeError(err)
	}
	defer resp.Body.Close()

	body, err := f.readBody(resp)
	if err != nil {
		return 0, "", fmt.Errorf("failed to read body: %w", err)
	}

	return resp.StatusCode, string(body), nil
}

// Close releases idle connections.
func (f *Fetcher) Close() {
	f.transport.CloseIdleConnections()
}

func (f *Fetcher) setRequestHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
}

// readBody reads the response body with the size cap, decoding gzip when a
// server ignored transparent negotiation and compressed anyway.
func (f *Fetcher) readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body

	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip decode error: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return io.ReadAll(io.LimitReader(reader, f.maxBodySize))
}

// categorizeError folds network failures into readable wrapped errors.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		return fmt.Errorf("timeout: %w", err)
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("DNS error: %w", err)
	}
	return err
}
