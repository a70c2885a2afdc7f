package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driving"
)

// setupTestServices injects mock services so commands run without a
// real store. The returned cleanup restores the package state.
func setupTestServices() func() {
	libraryService = &mockLibraryService{
		documents: []domain.Document{
			{
				ID:        "doc-1",
				Name:      "notes.txt",
				MIMEType:  "text/plain",
				SizeBytes: 42,
				Content:   "Test document content.",
				Chunks:    []string{"Test document content."},
				AddedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
				Active:    true,
			},
		},
	}
	retrievalService = &mockRetrievalService{
		chunks: []domain.ScoredChunk{
			{
				DocumentID:   "doc-1",
				DocumentName: "notes.txt",
				ChunkText:    "Test document content.",
				ChunkIndex:   0,
				Score:        2,
			},
		},
		context: "Relevant excerpts from the document library:\n\n[Source: notes.txt, Chunk 1]\nTest document content.\n\nAnswer using the excerpts above where they apply.",
	}

	return func() {
		libraryService = nil
		retrievalService = nil
	}
}

type mockLibraryService struct {
	documents []domain.Document
	err       error
}

func (m *mockLibraryService) Add(_ context.Context, content []byte, name, mimeType string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Document{
		ID:        "doc-new",
		Name:      name,
		MIMEType:  mimeType,
		SizeBytes: int64(len(content)),
		Content:   string(content),
		Chunks:    []string{string(content)},
		AddedAt:   time.Now(),
		Active:    true,
	}, nil
}

func (m *mockLibraryService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockLibraryService) Toggle(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.documents {
		if m.documents[i].ID == id {
			doc := m.documents[i]
			doc.Active = !doc.Active
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockLibraryService) Clear(_ context.Context) error {
	return m.err
}

func (m *mockLibraryService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockLibraryService) ListActive(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockLibraryService) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.documents {
		if m.documents[i].ID == id {
			return &m.documents[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockLibraryService) Stats(_ context.Context) (domain.LibraryStats, error) {
	stats := domain.LibraryStats{Total: len(m.documents)}
	for _, doc := range m.documents {
		if doc.Active {
			stats.Active++
		}
		stats.TotalSizeBytes += doc.SizeBytes
		stats.TotalChunks += len(doc.Chunks)
	}
	return stats, m.err
}

func (m *mockLibraryService) Subscribe(_ driving.Listener) int { return 1 }

func (m *mockLibraryService) Unsubscribe(_ int) {}

type mockRetrievalService struct {
	chunks  []domain.ScoredChunk
	context string
	err     error
}

func (m *mockRetrievalService) Retrieve(_ context.Context, _ string, _ int) ([]domain.ScoredChunk, error) {
	return m.chunks, m.err
}

func (m *mockRetrievalService) FormatContext(chunks []domain.ScoredChunk) string {
	if len(chunks) == 0 {
		return ""
	}
	return m.context
}

func (m *mockRetrievalService) RetrieveContext(_ context.Context, _ string, _ int) (string, error) {
	return m.context, m.err
}
