package driving

import (
	"context"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
)

// RetrievalService ranks document chunks against a query and renders
// the result as context for an LLM prompt.
type RetrievalService interface {
	// Retrieve scores every chunk of every active document against the
	// query and returns the top-K hits, highest score first. Ties keep
	// document order, then chunk order. An empty or non-matching query
	// yields an empty slice, never an error.
	Retrieve(ctx context.Context, query string, topK int) ([]domain.ScoredChunk, error)

	// FormatContext renders ranked chunks as a single delimited text
	// block. Empty input yields the empty string.
	FormatContext(chunks []domain.ScoredChunk) string

	// RetrieveContext combines Retrieve and FormatContext.
	RetrieveContext(ctx context.Context, query string, topK int) (string, error)
}
