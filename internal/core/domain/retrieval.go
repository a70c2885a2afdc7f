package domain

// ScoredChunk represents a single retrieval hit.
// It is transient output of the retriever and is never persisted.
type ScoredChunk struct {
	// DocumentID links to the document the chunk came from.
	DocumentID string

	// DocumentName is the source document's filename, carried for display.
	DocumentName string

	// ChunkText is the matched chunk content.
	ChunkText string

	// ChunkIndex is the zero-based position of the chunk within its document.
	ChunkIndex int

	// Score is the sum of raw query-token occurrence counts in the chunk.
	// Always positive; zero-score chunks are not emitted.
	Score int
}
