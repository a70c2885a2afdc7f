package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedFormat indicates an ingested file cannot be decoded
	// as text (binary formats such as PDF or DOCX, or non-UTF-8 bytes).
	// Ingestion aborts without committing any state.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
