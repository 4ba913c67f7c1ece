package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"collectible-documenter-be/internal/pkg/logger"
	"collectible-documenter-be/pkg/blob"
	"collectible-documenter-be/pkg/catalog"

	"github.com/stretchr/testify/assert"
)

// memStore is an in-memory blob.Store for tests.
type memStore struct {
	objects      map[string][]byte
	failDownload bool
	failDelete   bool
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func objKey(container, key string) string {
	return container + "/" + key
}

func (m *memStore) Upload(ctx context.Context, container, key string, data []byte, contentType string) error {
	m.objects[objKey(container, key)] = append([]byte(nil), data...)
	return nil
}

func (m *memStore) Download(ctx context.Context, container, key string) ([]byte, error) {
	if m.failDownload {
		return nil, errors.New("simulated transport failure")
	}
	data, ok := m.objects[objKey(container, key)]
	if !ok {
		return nil, blob.ErrNotFound
	}
	return data, nil
}

func (m *memStore) SignedURL(ctx context.Context, container, key string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("https://blobs.test/%s/%s?ttl=%d", container, key, int(ttl.Seconds())), nil
}

func (m *memStore) Delete(ctx context.Context, container, key string) error {
	if m.failDelete {
		return errors.New("simulated delete failure")
	}
	delete(m.objects, objKey(container, key))
	return nil
}

func testLogger() logger.ILogger {
	return logger.NewZapLogger(filepath.Join(os.TempDir(), "collectible-documenter-test.log"), false)
}

func TestStateServiceRoundTrip(t *testing.T) {
	store := newMemStore()
	svc := NewStateService(store, "session-state", false, testLogger())
	ctx := context.Background()

	state := catalog.NewState()
	state.EnsureItem()
	state.AddTag("vintage")
	state.AddItem(0)

	assert.NoError(t, svc.SaveState(ctx, "alice@example.com", state))

	snap := svc.LoadState(ctx, "alice@example.com")
	assert.Equal(t, []string{"vintage"}, snap.TagList)
	assert.Equal(t, []int{0, 1}, snap.Items)
}

func TestStateServiceLoadSwallowsFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		svc := NewStateService(newMemStore(), "session-state", false, testLogger())
		snap := svc.LoadState(ctx, "nobody@example.com")
		assert.Empty(t, snap.Items)
		assert.Empty(t, snap.TagList)
	})

	t.Run("malformed json", func(t *testing.T) {
		store := newMemStore()
		store.objects["session-state/bob@example.com.json"] = []byte("{nope")
		svc := NewStateService(store, "session-state", false, testLogger())
		snap := svc.LoadState(ctx, "bob@example.com")
		assert.Empty(t, snap.Items)
	})

	t.Run("transport failure", func(t *testing.T) {
		store := newMemStore()
		store.failDownload = true
		svc := NewStateService(store, "session-state", false, testLogger())
		snap := svc.LoadState(ctx, "carol@example.com")
		assert.Empty(t, snap.Items)
	})
}

func TestStateServiceLocalModeIsNoOp(t *testing.T) {
	store := newMemStore()
	svc := NewStateService(store, "session-state", true, testLogger())
	ctx := context.Background()

	state := catalog.NewState()
	state.EnsureItem()

	assert.NoError(t, svc.SaveState(ctx, "alice@example.com", state))
	assert.Empty(t, store.objects, "local mode must not touch the store")
}

func TestStateServiceOverwritesWholeBlob(t *testing.T) {
	store := newMemStore()
	svc := NewStateService(store, "session-state", false, testLogger())
	ctx := context.Background()

	first := catalog.NewState()
	first.EnsureItem()
	first.AddTag("old")
	assert.NoError(t, svc.SaveState(ctx, "alice@example.com", first))

	second := catalog.NewState()
	second.EnsureItem()
	assert.NoError(t, svc.SaveState(ctx, "alice@example.com", second))

	snap := svc.LoadState(ctx, "alice@example.com")
	assert.Empty(t, snap.TagList, "save must fully replace the prior record")
}
