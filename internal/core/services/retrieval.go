package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/corpus-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// DefaultTopK is the number of chunks returned when the caller does not
// ask for a specific count.
const DefaultTopK = 3

// minTokenLength is the shortest query token that participates in
// scoring; shorter tokens are discarded as noise.
const minTokenLength = 3

// Context block delimiters. The formatted block is prepended to a user
// query before it is submitted to a language model.
const (
	contextHeader  = "Relevant excerpts from the document library:"
	chunkSeparator = "\n\n---\n\n"
	contextFooter  = "Answer using the excerpts above where they apply."
)

// RetrievalService scores document chunks against queries.
// Scoring is a plain sum of token occurrence counts, without length
// normalization or term weighting; ranking therefore depends only on
// raw counts and original chunk order.
type RetrievalService struct {
	library driving.LibraryService
}

// NewRetrievalService creates a retrieval service reading from the
// given library.
func NewRetrievalService(library driving.LibraryService) *RetrievalService {
	return &RetrievalService{library: library}
}

// Retrieve returns the topK highest-scoring chunks across all active
// documents. Equal scores keep document order, then chunk order.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, topK int) ([]domain.ScoredChunk, error) {
	logger.Section("Retrieval")
	logger.Debug("Query: %q", query)

	if topK <= 0 {
		topK = DefaultTopK
	}

	docs, err := s.library.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active documents: %w", err)
	}

	tokens := tokenize(query)
	logger.Debug("Query tokens: %v, active documents: %d", tokens, len(docs))
	if len(tokens) == 0 || len(docs) == 0 {
		return []domain.ScoredChunk{}, nil
	}

	var scored []domain.ScoredChunk
	for _, doc := range docs {
		for i, chunk := range doc.Chunks {
			lowered := strings.ToLower(chunk)
			score := 0
			for _, token := range tokens {
				score += strings.Count(lowered, token)
			}
			if score > 0 {
				scored = append(scored, domain.ScoredChunk{
					DocumentID:   doc.ID,
					DocumentName: doc.Name,
					ChunkText:    chunk,
					ChunkIndex:   i,
					Score:        score,
				})
			}
		}
	}

	// Stable sort keeps emission order for equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	logger.Debug("Returning %d scored chunks", len(scored))
	if scored == nil {
		scored = []domain.ScoredChunk{}
	}
	return scored, nil
}

// FormatContext renders ranked chunks as one delimited text block.
// Chunk numbering is 1-based for readability.
func (s *RetrievalService) FormatContext(chunks []domain.ScoredChunk) string {
	if len(chunks) == 0 {
		return ""
	}

	blocks := make([]string, len(chunks))
	for i, chunk := range chunks {
		blocks[i] = fmt.Sprintf("[Source: %s, Chunk %d]\n%s",
			chunk.DocumentName, chunk.ChunkIndex+1, chunk.ChunkText)
	}

	var b strings.Builder
	b.WriteString(contextHeader)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(blocks, chunkSeparator))
	b.WriteString("\n\n")
	b.WriteString(contextFooter)
	return b.String()
}

// RetrieveContext combines Retrieve and FormatContext.
func (s *RetrievalService) RetrieveContext(ctx context.Context, query string, topK int) (string, error) {
	chunks, err := s.Retrieve(ctx, query, topK)
	if err != nil {
		return "", err
	}
	return s.FormatContext(chunks), nil
}

// tokenize lowercases the query, splits it on whitespace, and drops
// tokens shorter than minTokenLength.
func tokenize(query string) []string {
	var tokens []string
	for _, field := range strings.Fields(strings.ToLower(query)) {
		if len(field) >= minTokenLength {
			tokens = append(tokens, field)
		}
	}
	return tokens
}
