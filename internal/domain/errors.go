package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable signals that the episode export could not be read or parsed.
	ErrSourceUnavailable = errors.New("episode source unavailable")
	// ErrRecordSkipped signals a record excluded from the artifact (no identifier).
	ErrRecordSkipped = errors.New("record skipped")
	// ErrArtifactWrite signals a failed artifact write or publish.
	ErrArtifactWrite = errors.New("artifact write failed")
	// ErrInvalidConfig signals an invalid configuration value.
	ErrInvalidConfig = errors.New("invalid config")
)

// SkippedRecordError describes a record excluded from the build.
type SkippedRecordError struct {
	Position int
	Reason   string
}

func (e *SkippedRecordError) Error() string {
	return fmt.Sprintf("%s: record %d: %s", ErrRecordSkipped.Error(), e.Position, e.Reason)
}

func (e *SkippedRecordError) Unwrap() error { return ErrRecordSkipped }
