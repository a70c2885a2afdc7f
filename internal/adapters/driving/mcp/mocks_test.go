package mcp

import (
	"context"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driving"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	chunks  []domain.ScoredChunk
	context string
	err     error
}

func (m *mockRetrievalService) Retrieve(_ context.Context, _ string, _ int) ([]domain.ScoredChunk, error) {
	return m.chunks, m.err
}

func (m *mockRetrievalService) FormatContext(_ []domain.ScoredChunk) string {
	return m.context
}

func (m *mockRetrievalService) RetrieveContext(_ context.Context, _ string, _ int) (string, error) {
	return m.context, m.err
}

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct {
	documents []domain.Document
	document  *domain.Document
	stats     domain.LibraryStats
	err       error
}

func (m *mockLibraryService) Add(_ context.Context, _ []byte, _, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockLibraryService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockLibraryService) Toggle(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
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

func (m *mockLibraryService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockLibraryService) Stats(_ context.Context) (domain.LibraryStats, error) {
	return m.stats, m.err
}

func (m *mockLibraryService) Subscribe(_ driving.Listener) int {
	return 0
}

func (m *mockLibraryService) Unsubscribe(_ int) {}
