package domain

import "time"

// Document represents a unit of ingested knowledge.
// Everything except Active is fixed at ingestion time.
type Document struct {
	// ID is the unique identifier, generated at ingestion.
	// IDs are never reused, even after deletion.
	ID string

	// Name is the original filename.
	Name string

	// MIMEType is the content type captured at ingestion (e.g., "text/plain").
	MIMEType string

	// SizeBytes is the size of the raw input in bytes.
	SizeBytes int64

	// Content is the full decoded text.
	Content string

	// Chunks holds the derived chunks in the order they appear in Content.
	// Non-empty whenever Content is non-empty after trimming.
	Chunks []string

	// AddedAt is the ingestion timestamp.
	AddedAt time.Time

	// Active controls inclusion in retrieval. Defaults to true.
	// This is the only mutable field.
	Active bool
}

// LibraryStats aggregates over the current document library.
type LibraryStats struct {
	// Total is the number of documents, active or not.
	Total int

	// Active is the number of documents with Active set.
	Active int

	// TotalSizeBytes sums SizeBytes across all documents.
	TotalSizeBytes int64

	// TotalChunks sums chunk counts across all documents.
	TotalChunks int
}
