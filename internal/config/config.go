// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New; Load layers an optional YAML file and env on top.
// - Validation fails fast; an invalid weight never reaches the scorer.
package config

import (
	"runtime"

	"github.com/hoopsight/hoopsight/internal/domain/scoring"
)

// Provider configures the upstream statistics API client.
type Provider struct {
	// BaseURL of the balldontlie-compatible API.
	BaseURL string `koanf:"base_url"`

	// APIKey sent in the Authorization header. Also settable via
	// HOOPSIGHT_PROVIDER_API_KEY.
	APIKey string `koanf:"api_key"`

	// TimeoutMS bounds a single upstream request.
	TimeoutMS int `koanf:"timeout_ms"`

	// PaceMS is the delay between paged/daily requests during sync. The
	// upstream allows 100 requests per minute; 1000ms keeps sync well under.
	PaceMS int `koanf:"pace_ms"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath locates the SQLite game cache.
	DBPath string `koanf:"db_path"`

	// FavoriteTeam is the default favorite side code; per-call overrides win.
	FavoriteTeam string `koanf:"favorite_team"`

	// ScoreWorkers bounds the parallel scoring fan-out.
	ScoreWorkers int `koanf:"score_workers"`

	// MaxLookbackDays caps the days parameter at the HTTP/CLI boundary.
	// The core itself accepts any positive value.
	MaxLookbackDays int `koanf:"max_lookback_days"`

	// Scoring holds the engagement weights.
	Scoring scoring.Config `koanf:"scoring"`

	// Provider configures the upstream statistics API.
	Provider Provider `koanf:"provider"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8090",
		DBPath:          "data/hoopsight.db",
		FavoriteTeam:    "",
		ScoreWorkers:    runtime.NumCPU(),
		MaxLookbackDays: 30,
		Scoring:         scoring.DefaultConfig(),
		Provider: Provider{
			BaseURL:   "https://api.balldontlie.io/v1",
			TimeoutMS: 10_000,
			PaceMS:    1_000,
		},
	}
}
