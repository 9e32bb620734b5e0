// Package config defines service configuration structures and loading
// hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers file and environment sources over the defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory evaluation queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of pipeline workers.
	WorkerCount int `koanf:"worker_count"`

	// AnalyzerTimeoutMS bounds a single analyzer run.
	AnalyzerTimeoutMS int `koanf:"analyzer_timeout_ms"`

	// FetchTimeoutMS bounds page acquisition.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// MongoURI selects the persistence backend. Empty means the
	// in-memory store.
	MongoURI string `koanf:"mongo_uri"`

	// MongoDatabase names the evaluation database.
	MongoDatabase string `koanf:"mongo_database"`

	// RendererURL points at the headless screenshot service. Empty
	// disables screenshots.
	RendererURL string `koanf:"renderer_url"`

	// LLMAPIKey authenticates against the reasoning service. Empty
	// selects the deterministic stub.
	LLMAPIKey string `koanf:"llm_api_key"`

	// LLMModel selects the reasoning model.
	LLMModel string `koanf:"llm_model"`

	// LLMBaseURL overrides the reasoning-service host.
	LLMBaseURL string `koanf:"llm_base_url"`

	// LLMMaxTokens caps reasoning-service completions.
	LLMMaxTokens int `koanf:"llm_max_tokens"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":8080",
		QueueSize:         1024,
		WorkerCount:       runtime.NumCPU() * 4,
		AnalyzerTimeoutMS: 10_000,
		FetchTimeoutMS:    20_000,
		MongoDatabase:     "unified_web_insights",
		LLMModel:          "sonar",
		LLMMaxTokens:      2000,
	}
}
