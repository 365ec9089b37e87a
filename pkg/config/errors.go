package config

import "errors"

// Sentinel errors for configuration loading.
var (
	// ErrMalformedEnvLine is returned when a .env line is not a comment,
	// not blank, and not a KEY=VALUE pair.
	ErrMalformedEnvLine = errors.New("config: malformed env line")
)
