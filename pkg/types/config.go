// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by the page fetcher.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout (default 10s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests. Empty
	// means "wangyun/<version> (<contact-email>)".
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// FetchConfig holds settings for retrieving Wiktionary pages.
type FetchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the page endpoint; the character is appended as a path segment.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// MinGap is the minimum delay between the end of one request and the
	// start of the next (default 100ms).
	MinGap time.Duration `json:"min_gap" yaml:"min_gap" mapstructure:"min_gap"`

	// RequestsPerSecond caps the request rate independently of MinGap
	// (default 10). Zero disables the cap.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// MaxRetries is the number of retries on HTTP 429 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// CacheConfig holds settings for the local page cache.
type CacheConfig struct {
	// Enabled turns the cache on.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Dir is the directory holding the cache database.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxAge is how long a cached page stays fresh (default 7 days).
	MaxAge time.Duration `json:"max_age" yaml:"max_age" mapstructure:"max_age"`
}

// OutputFormat selects how extracted records are rendered.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// OutputConfig holds rendering settings.
type OutputConfig struct {
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	// Color enables ANSI colors in text output.
	Color bool `json:"color" yaml:"color" mapstructure:"color"`
}

// Config groups all settings read from wangyun.yaml.
type Config struct {
	Fetch  FetchConfig  `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
	Cache  CacheConfig  `json:"cache" yaml:"cache" mapstructure:"cache"`
	Output OutputConfig `json:"output" yaml:"output" mapstructure:"output"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		Fetch: FetchConfig{
			HTTPConfig: HTTPConfig{
				Timeout: 10 * time.Second,
			},
			BaseURL:           "https://en.wiktionary.org/api/rest_v1/page/html",
			MinGap:            100 * time.Millisecond,
			RequestsPerSecond: 10,
			MaxRetries:        3,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".wangyun",
			MaxAge:  7 * 24 * time.Hour,
		},
		Output: OutputConfig{
			Format: OutputText,
			Color:  true,
		},
	}
}
