package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpus-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/corpus-cli/internal/chunker"
	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
)

// failingBlobStore wraps a real store and fails saves on demand.
type failingBlobStore struct {
	driven.BlobStore
	saveErr error
}

func (s *failingBlobStore) Save(ctx context.Context, key string, data []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.BlobStore.Save(ctx, key, data)
}

func newTestLibrary(t *testing.T) (*LibraryService, *memory.BlobStore) {
	t.Helper()

	blobs := memory.NewBlobStore()
	svc, err := NewLibraryService(context.Background(), blobs, chunker.New())
	require.NoError(t, err)
	return svc, blobs
}

func TestNewLibraryService_EmptyStore(t *testing.T) {
	svc, _ := newTestLibrary(t)

	docs, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestNewLibraryService_RestoresPersistedDocuments(t *testing.T) {
	ctx := context.Background()
	blobs := memory.NewBlobStore()

	first, err := NewLibraryService(ctx, blobs, chunker.New())
	require.NoError(t, err)
	added, err := first.Add(ctx, []byte("Persisted sentence."), "saved.txt", "text/plain")
	require.NoError(t, err)

	// A fresh service over the same blob store sees the document.
	second, err := NewLibraryService(ctx, blobs, chunker.New())
	require.NoError(t, err)

	doc, err := second.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "saved.txt", doc.Name)
	assert.Equal(t, added.Chunks, doc.Chunks)
	assert.True(t, doc.Active)
}

func TestLibraryService_Add(t *testing.T) {
	svc, blobs := newTestLibrary(t)
	ctx := context.Background()

	doc, err := svc.Add(ctx, []byte("First sentence. Second sentence."), "notes.txt", "text/plain")
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "notes.txt", doc.Name)
	assert.Equal(t, "text/plain", doc.MIMEType)
	assert.Equal(t, int64(32), doc.SizeBytes)
	assert.True(t, doc.Active)
	assert.NotEmpty(t, doc.Chunks)
	assert.False(t, doc.AddedAt.IsZero())

	// Write-through: the persisted blob already holds the document.
	data, err := blobs.Load(ctx, libraryKey)
	require.NoError(t, err)
	var persisted []domain.Document
	require.NoError(t, json.Unmarshal(data, &persisted))
	require.Len(t, persisted, 1)
	assert.Equal(t, doc.ID, persisted[0].ID)
}

func TestLibraryService_Add_UnsupportedFormat(t *testing.T) {
	svc, _ := newTestLibrary(t)
	ctx := context.Background()

	for _, mimeType := range []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	} {
		_, err := svc.Add(ctx, []byte("irrelevant"), "doc.bin", mimeType)
		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat, "mime type %s", mimeType)
	}

	// Nothing was committed (scenario from the error-handling contract).
	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
}

func TestLibraryService_Add_InvalidUTF8(t *testing.T) {
	svc, _ := newTestLibrary(t)

	_, err := svc.Add(context.Background(), []byte{0xff, 0xfe, 0x00}, "garbage.txt", "text/plain")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestLibraryService_Add_PersistFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	failing := &failingBlobStore{BlobStore: memory.NewBlobStore()}
	svc, err := NewLibraryService(ctx, failing, chunker.New())
	require.NoError(t, err)

	failing.saveErr = errors.New("disk full")
	_, err = svc.Add(ctx, []byte("Doomed sentence."), "doomed.txt", "text/plain")
	require.Error(t, err)

	failing.saveErr = nil
	docs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLibraryService_Remove(t *testing.T) {
	svc, _ := newTestLibrary(t)
	ctx := context.Background()

	doc, err := svc.Add(ctx, []byte("To be removed."), "gone.txt", "text/plain")
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, doc.ID))

	_, err = svc.Get(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibraryService_Remove_UnknownIDIsNoOp(t *testing.T) {
	svc, _ := newTestLibrary(t)

	assert.NoError(t, svc.Remove(context.Background(), "no-such-id"))
}

func TestLibraryService_Toggle(t *testing.T) {
	svc, _ := newTestLibrary(t)
	ctx := context.Background()

	doc, err := svc.Add(ctx, []byte("Toggle me."), "flip.txt", "text/plain")
	require.NoError(t, err)

	toggled, err := svc.Toggle(ctx, doc.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	// Chunks are untouched by toggling.
	assert.Equal(t, doc.Chunks, toggled.Chunks)

	toggled, err = svc.Toggle(ctx, doc.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Active)
}

func TestLibraryService_Toggle_UnknownID(t *testing.T) {
	svc, _ := newTestLibrary(t)

	_, err := svc.Toggle(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibraryService_ListActive(t *testing.T) {
	svc, _ := newTestLibrary(t)
	ctx := context.Background()

	docA, err := svc.Add(ctx, []byte("Active doc."), "a.txt", "text/plain")
	require.NoError(t, err)
	docB, err := svc.Add(ctx, []byte("Inactive doc."), "b.txt", "text/plain")
	require.NoError(t, err)

	_, err = svc.Toggle(ctx, docB.ID)
	require.NoError(t, err)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, docA.ID, active[0].ID)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLibraryService_Clear(t *testing.T) {
	svc, blobs := newTestLibrary(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, []byte("One."), "one.txt", "text/plain")
	require.NoError(t, err)
	_, err = svc.Add(ctx, []byte("Two."), "two.txt", "text/plain")
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx))

	docs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)

	// The empty collection is persisted too.
	data, err := blobs.Load(ctx, libraryKey)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestLibraryService_Stats(t *testing.T) {
	svc, _ := newTestLibrary(t)
	ctx := context.Background()

	docA, err := svc.Add(ctx, []byte("Alpha sentence. Beta sentence."), "a.txt", "text/plain")
	require.NoError(t, err)
	docB, err := svc.Add(ctx, []byte("Gamma sentence."), "b.txt", "text/plain")
	require.NoError(t, err)

	_, err = svc.Toggle(ctx, docB.ID)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, docA.SizeBytes+docB.SizeBytes, stats.TotalSizeBytes)
	// Inactive documents still count toward the chunk total.
	assert.Equal(t, len(docA.Chunks)+len(docB.Chunks), stats.TotalChunks)
}

func TestLibraryService_ListenersReceiveSnapshot(t *testing.T) {
	svc, _ := newTestLibrary(t)
	ctx := context.Background()

	var got []domain.Document
	calls := 0
	svc.Subscribe(func(docs []domain.Document) error {
		calls++
		got = docs
		return nil
	})

	_, err := svc.Add(ctx, []byte("Observed."), "obs.txt", "text/plain")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	require.Len(t, got, 1)
	assert.Equal(t, "obs.txt", got[0].Name)

	require.NoError(t, svc.Clear(ctx))
	assert.Equal(t, 2, calls)
	assert.Empty(t, got)
}

func TestLibraryService_ListenerFailureIsIsolated(t *testing.T) {
	svc, _ := newTestLibrary(t)
	ctx := context.Background()

	secondCalled := false
	thirdCalled := false
	svc.Subscribe(func(_ []domain.Document) error {
		return errors.New("listener rejected change")
	})
	svc.Subscribe(func(_ []domain.Document) error {
		secondCalled = true
		panic("listener blew up")
	})
	svc.Subscribe(func(_ []domain.Document) error {
		thirdCalled = true
		return nil
	})

	doc, err := svc.Add(ctx, []byte("Still works."), "ok.txt", "text/plain")
	require.NoError(t, err)
	assert.True(t, secondCalled)
	assert.True(t, thirdCalled)

	// The operation itself completed despite the failing listeners.
	_, err = svc.Get(ctx, doc.ID)
	assert.NoError(t, err)
}

func TestLibraryService_Unsubscribe(t *testing.T) {
	svc, _ := newTestLibrary(t)
	ctx := context.Background()

	calls := 0
	id := svc.Subscribe(func(_ []domain.Document) error {
		calls++
		return nil
	})

	_, err := svc.Add(ctx, []byte("One."), "one.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	svc.Unsubscribe(id)

	_, err = svc.Add(ctx, []byte("Two."), "two.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
