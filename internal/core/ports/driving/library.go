package driving

import (
	"context"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
)

// Listener is invoked with the full document collection after every
// mutating library operation. A returned error is logged at the point of
// invocation and never propagated to the operation that triggered it.
type Listener func(documents []domain.Document) error

// LibraryService manages the document library: ingestion, lifecycle,
// aggregation, and change notification. Every mutation is persisted
// before it returns.
type LibraryService interface {
	// Add ingests raw file bytes as a new document. The bytes must decode
	// as UTF-8 text; binary formats fail with domain.ErrUnsupportedFormat
	// and leave the library unchanged.
	Add(ctx context.Context, content []byte, name, mimeType string) (*domain.Document, error)

	// Remove deletes the document with the given ID.
	// Removing an unknown ID is a no-op, not an error.
	Remove(ctx context.Context, id string) error

	// Toggle flips the document's active flag and returns the updated
	// document. Returns domain.ErrNotFound for an unknown ID.
	Toggle(ctx context.Context, id string) (*domain.Document, error)

	// Clear empties the library.
	Clear(ctx context.Context) error

	// List returns all documents in insertion order.
	List(ctx context.Context) ([]domain.Document, error)

	// ListActive returns the documents with the active flag set,
	// in insertion order.
	ListActive(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound for an unknown ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Stats aggregates over the current library, counting inactive
	// documents and their chunks as well.
	Stats(ctx context.Context) (domain.LibraryStats, error)

	// Subscribe registers a listener and returns its registration ID.
	Subscribe(fn Listener) int

	// Unsubscribe removes a previously registered listener.
	// Unknown IDs are ignored.
	Unsubscribe(id int)
}
