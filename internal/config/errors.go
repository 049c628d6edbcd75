package config

import (
	"errors"
)

// Sentinel errors for configuration loading. Callers match with errors.Is.
var (
	// ErrLoadConfig wraps failures reading the TALLY_CONFIG file or the
	// TALLY_* environment.
	ErrLoadConfig = errors.New("load config failed")

	// ErrInvalidConfig wraps validation failures, such as a missing listen
	// address or no data source configured.
	ErrInvalidConfig = errors.New("invalid config")
)
