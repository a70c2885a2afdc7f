package driven

import "context"

// BlobStore persists opaque blobs under string keys.
// The library service stores the whole serialized document collection
// under a single key; the format is an implementation detail of the
// caller, never of the store.
type BlobStore interface {
	// Load retrieves the blob stored under key.
	// Returns domain.ErrNotFound if no blob exists for the key.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores the blob under key, overwriting any previous value.
	Save(ctx context.Context, key string, data []byte) error
}
