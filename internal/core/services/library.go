package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/corpus-cli/internal/chunker"
	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/corpus-cli/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// libraryKey is the blob store key holding the serialized collection.
const libraryKey = "library"

// binaryFormats lists MIME types rejected at ingestion because no text
// decoder exists for them.
var binaryFormats = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// LibraryService manages the document library with write-through
// persistence: every mutation saves the whole collection before it is
// committed in memory, so a failed save leaves both sides unchanged.
type LibraryService struct {
	mu       sync.RWMutex
	blobs    driven.BlobStore
	splitter *chunker.Splitter

	documents []domain.Document

	listenerMu sync.Mutex
	listeners  map[int]driving.Listener
	nextID     int
}

// NewLibraryService creates a library service backed by the given blob
// store, restoring any previously persisted collection.
func NewLibraryService(ctx context.Context, blobs driven.BlobStore, splitter *chunker.Splitter) (*LibraryService, error) {
	if splitter == nil {
		splitter = chunker.New()
	}

	s := &LibraryService{
		blobs:     blobs,
		splitter:  splitter,
		listeners: make(map[int]driving.Listener),
	}

	if err := s.restore(ctx); err != nil {
		return nil, fmt.Errorf("restoring library: %w", err)
	}

	return s, nil
}

// restore loads the persisted collection. An absent blob means an empty
// library, not an error.
func (s *LibraryService) restore(ctx context.Context) error {
	data, err := s.blobs.Load(ctx, libraryKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	var docs []domain.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("decoding persisted library: %w", err)
	}

	s.documents = docs
	logger.Debug("Restored %d documents from store", len(docs))
	return nil
}

// Add ingests raw file bytes as a new document.
func (s *LibraryService) Add(ctx context.Context, content []byte, name, mimeType string) (*domain.Document, error) {
	if _, ok := binaryFormats[mimeType]; ok {
		return nil, fmt.Errorf("%s: %w", mimeType, domain.ErrUnsupportedFormat)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%s is not valid UTF-8 text: %w", name, domain.ErrUnsupportedFormat)
	}

	text := string(content)
	doc := domain.Document{
		ID:        uuid.New().String(),
		Name:      name,
		MIMEType:  mimeType,
		SizeBytes: int64(len(content)),
		Content:   text,
		Chunks:    s.splitter.Split(text),
		AddedAt:   time.Now().UTC(),
		Active:    true,
	}

	s.mu.Lock()
	next := append(s.copyDocuments(), doc)
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	logger.Debug("Added document %s (%q, %d chunks)", doc.ID, doc.Name, len(doc.Chunks))
	s.notify()
	return &doc, nil
}

// Remove deletes a document. Unknown IDs are a no-op.
func (s *LibraryService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	next := s.copyDocuments()
	next = append(next[:idx], next[idx+1:]...)
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	logger.Debug("Removed document %s", id)
	s.notify()
	return nil
}

// Toggle flips a document's active flag.
func (s *LibraryService) Toggle(ctx context.Context, id string) (*domain.Document, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	next := s.copyDocuments()
	next[idx].Active = !next[idx].Active
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	toggled := next[idx]
	s.mu.Unlock()

	logger.Debug("Toggled document %s active=%t", id, toggled.Active)
	s.notify()
	return &toggled, nil
}

// Clear empties the library.
func (s *LibraryService) Clear(ctx context.Context) error {
	s.mu.Lock()
	if err := s.commit(ctx, []domain.Document{}); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	logger.Debug("Cleared document library")
	s.notify()
	return nil
}

// List returns all documents in insertion order.
func (s *LibraryService) List(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyDocuments(), nil
}

// ListActive returns the active documents in insertion order.
func (s *LibraryService) ListActive(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []domain.Document
	for _, doc := range s.documents {
		if doc.Active {
			active = append(active, doc)
		}
	}
	return active, nil
}

// Get retrieves a document by ID.
func (s *LibraryService) Get(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	doc := s.documents[idx]
	return &doc, nil
}

// Stats aggregates over the current library, inactive documents included.
func (s *LibraryService) Stats(_ context.Context) (domain.LibraryStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.LibraryStats{Total: len(s.documents)}
	for _, doc := range s.documents {
		if doc.Active {
			stats.Active++
		}
		stats.TotalSizeBytes += doc.SizeBytes
		stats.TotalChunks += len(doc.Chunks)
	}
	return stats, nil
}

// Subscribe registers a listener and returns its registration ID.
func (s *LibraryService) Subscribe(fn driving.Listener) int {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	s.nextID++
	s.listeners[s.nextID] = fn
	return s.nextID
}

// Unsubscribe removes a registered listener. Unknown IDs are ignored.
func (s *LibraryService) Unsubscribe(id int) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	delete(s.listeners, id)
}

// commit persists the candidate collection and, on success, makes it the
// current one. Caller must hold mu.
func (s *LibraryService) commit(ctx context.Context, next []domain.Document) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encoding library: %w", err)
	}
	if err := s.blobs.Save(ctx, libraryKey, data); err != nil {
		return fmt.Errorf("persisting library: %w", err)
	}

	s.documents = next
	return nil
}

// notify invokes every listener with a snapshot of the collection.
// Each invocation is isolated: a returned error or panic is logged and
// does not stop the remaining listeners.
func (s *LibraryService) notify() {
	s.mu.RLock()
	snapshot := s.copyDocuments()
	s.mu.RUnlock()

	s.listenerMu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make(map[int]driving.Listener, len(ids))
	for _, id := range ids {
		fns[id] = s.listeners[id]
	}
	s.listenerMu.Unlock()

	for _, id := range ids {
		s.invokeListener(id, fns[id], snapshot)
	}
}

// invokeListener runs one listener inside its own error boundary.
func (s *LibraryService) invokeListener(id int, fn driving.Listener, docs []domain.Document) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("library listener %d panicked: %v", id, r)
		}
	}()

	if err := fn(docs); err != nil {
		logger.Error("library listener %d failed: %v", id, err)
	}
}

// copyDocuments returns a shallow copy of the collection slice.
// Chunks and content are immutable after ingestion, so sharing the
// backing data is safe. Caller must hold mu.
func (s *LibraryService) copyDocuments() []domain.Document {
	out := make([]domain.Document, len(s.documents))
	copy(out, s.documents)
	return out
}

// indexOf returns the position of a document, or -1. Caller must hold mu.
func (s *LibraryService) indexOf(id string) int {
	for i := range s.documents {
		if s.documents[i].ID == id {
			return i
		}
	}
	return -1
}
