package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageServiceDeleteImages(t *testing.T) {
	ctx := context.Background()
	email := "alice@example.com"

	t.Run("removes both sides", func(t *testing.T) {
		store := newMemStore()
		store.objects["user-images/alice@example.com/2_front.png"] = []byte{1}
		store.objects["user-images/alice@example.com/2_back.png"] = []byte{2}

		svc := NewImageService(store, "user-images", false, testLogger())
		require.NoError(t, svc.DeleteImages(ctx, email, 2))
		assert.Empty(t, store.objects)
	})

	t.Run("reports store failures", func(t *testing.T) {
		store := newMemStore()
		store.failDelete = true

		svc := NewImageService(store, "user-images", false, testLogger())
		assert.Error(t, svc.DeleteImages(ctx, email, 2), "a failed delete must surface so the consumer can retry")
	})

	t.Run("local mode is a no-op", func(t *testing.T) {
		store := newMemStore()
		store.failDelete = true

		svc := NewImageService(store, "user-images", true, testLogger())
		assert.NoError(t, svc.DeleteImages(ctx, email, 2))
	})
}
