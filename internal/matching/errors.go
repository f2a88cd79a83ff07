package matching

import "errors"

var (
	// ErrInvalidInput is returned when a side of the match has neither text nor structure.
	ErrInvalidInput = errors.New("cv and job texts are required")

	// ErrBackendUnavailable wraps every embedding failure. It never reaches callers of
	// Engine.Match: the engine falls back to Jaccard scoring instead.
	ErrBackendUnavailable = errors.New("embedding backend unavailable")

	// ErrInvalidConfig is returned by NewEngine for inconsistent weights or thresholds.
	ErrInvalidConfig = errors.New("invalid matching config")
)
