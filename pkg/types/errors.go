package types

import "errors"

// Converter run errors.
var (
	// ErrMissingInput indicates a required source file or directory is absent.
	ErrMissingInput = errors.New("required input missing")

	// ErrInvalidConfig indicates a converter configuration failed validation.
	ErrInvalidConfig = errors.New("invalid converter configuration")

	// ErrUnknownSplit indicates a split label outside the recognized vocabulary.
	ErrUnknownSplit = errors.New("unknown split label")
)
