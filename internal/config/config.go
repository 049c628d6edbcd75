// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers an optional YAML file and environment variables on top.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataURL points at an HTTP directory holding config.json and
	// month<ID>.json. Takes precedence over DataDir when both are set.
	DataURL string `koanf:"data_url"`

	// DataDir points at a local directory with the same layout.
	DataDir string `koanf:"data_dir"`

	// Months optionally overrides the manifest with an explicit list.
	Months []string `koanf:"months"`

	// RequestTimeoutS bounds each upstream fetch, in seconds.
	RequestTimeoutS int `koanf:"request_timeout_s"`

	// RefreshIntervalS re-aggregates the snapshot periodically; 0 disables.
	RefreshIntervalS int `koanf:"refresh_interval_s"`

	// Watch re-aggregates when files under DataDir change.
	Watch bool `koanf:"watch"`

	// MaxLimit caps GET /totals?limit.
	MaxLimit int `koanf:"max_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9180",
		DataDir:         "data",
		RequestTimeoutS: 10,
		Watch:           true,
		MaxLimit:        100,
	}
}
