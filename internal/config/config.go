// Package config defines runtime configuration for the analyzer service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all settings for analysis runs and the HTTP surface.
type Config struct {
	// User-Agent sent with every outbound request, identifying the scanner.
	UserAgent string `json:"user_agent"`

	// Timeout for fetching the target page
	FetchTimeout time.Duration `json:"fetch_timeout"`

	// Timeout for the robots.txt fetch
	RobotsTimeout time.Duration `json:"robots_timeout"`

	// Maximum response body size in bytes
	MaxBodySize int64 `json:"max_body_size"`

	// Outbound requests per second (politeness cap, 0 = unlimited)
	RequestsPerSecond float64 `json:"requests_per_second"`

	// === Persona classification ===

	// OpenAI API key; empty disables the AI path (heuristic fallback only)
	OpenAIKey string `json:"-"`

	// Model for the persona completion call
	OpenAIModel string `json:"openai_model"`

	// Timeout for each completion call
	PersonaTimeout time.Duration `json:"persona_timeout"`

	// === Server ===

	// Listen address for the HTTP API
	ListenAddr string `json:"listen_addr"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		UserAgent:         "Mozilla/5.0 (compatible; BalloonSight/1.0; +https://balloonsight.com/bot)",
		FetchTimeout:      30 * time.Second,
		RobotsTimeout:     5 * time.Second,
		MaxBodySize:       10 * 1024 * 1024, // 10MB
		RequestsPerSecond: 10,
		OpenAIModel:       "gpt-3.5-turbo",
		PersonaTimeout:    15 * time.Second,
		ListenAddr:        ":8080",
	}
}

// Validate clamps out-of-range values instead of failing the run.
func (c *Config) Validate() error {
	if c.UserAgent == "" {
		return fmt.Errorf("user agent must not be empty")
	}
	if c.FetchTimeout < time.Second {
		c.FetchTimeout = time.Second
	}
	if c.RobotsTimeout < time.Second {
		c.RobotsTimeout = time.Second
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = 10 * 1024 * 1024
	}
	if c.RequestsPerSecond < 0 {
		c.RequestsPerSecond = 0
	}
	if c.PersonaTimeout < time.Second {
		c.PersonaTimeout = time.Second
	}
	return nil
}

// FromEnv loads a .env file when present and applies environment overrides
// on top of defaults. The API credential only ever enters through here or an
// explicit caller assignment, never through ambient reads elsewhere.
func FromEnv() *Config {
	_ = godotenv.Load()

	cfg := Default()
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAIModel = v
	}
	if v := os.Getenv("BALLOONSIGHT_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("BALLOONSIGHT_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("BALLOONSIGHT_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.FetchTimeout = d
		}
	}
	if v := os.Getenv("BALLOONSIGHT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RequestsPerSecond = f
		}
	}
	return cfg
}

// Save writes the configuration to a JSON file. The API key is never
// serialized.
func (c *Config) Save(filePath string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Load reads configuration from a JSON file on top of defaults.
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
