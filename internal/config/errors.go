package config

import "errors"

// Errors returned by configuration loading.
var (
	// ErrInvalidFile indicates a configuration file that could not be
	// parsed.
	ErrInvalidFile = errors.New("invalid configuration file")

	// ErrBadValue indicates a configuration field with the wrong
	// type or shape.
	ErrBadValue = errors.New("bad configuration value")
)
