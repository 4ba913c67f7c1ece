package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	signer := NewURLSigner("test-secret")
	store, err := NewBadgerStore(t.TempDir(), "http://localhost:3000", signer)
	if err != nil {
		t.Fatalf("NewBadgerStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBadgerStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	data := []byte(`{"Items":[1]}`)
	if err := store.Upload(ctx, "session-state", "alice@example.com.json", data, "application/json"); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	got, err := store.Download(ctx, "session-state", "alice@example.com.json")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Download = %s, want %s", got, data)
	}
}

func TestBadgerStoreOverwrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Upload(ctx, "c", "k", []byte("old"), "")
	store.Upload(ctx, "c", "k", []byte("new"), "")

	got, err := store.Download(ctx, "c", "k")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("Download = %s, want new (writes overwrite)", got)
	}
}

func TestBadgerStoreNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Download(context.Background(), "c", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	// Deleting a missing key is not an error.
	if err := store.Delete(context.Background(), "c", "missing"); err != nil {
		t.Errorf("Delete missing: %v", err)
	}
}

func TestBadgerStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Upload(ctx, "c", "k", []byte("x"), "")
	if err := store.Delete(ctx, "c", "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Download(ctx, "c", "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err after delete = %v, want ErrNotFound", err)
	}
}

func TestBadgerStoreSignedURL(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	url, err := store.SignedURL(ctx, "user-images", "alice@example.com/0_front.png", time.Hour)
	if err != nil {
		t.Fatalf("SignedURL: %v", err)
	}

	if !strings.HasPrefix(url, "http://localhost:3000/api/blob/v1/user-images/alice@example.com/0_front.png?") {
		t.Errorf("unexpected url %s", url)
	}
	if !strings.Contains(url, "exp=") || !strings.Contains(url, "sig=") {
		t.Errorf("url missing exp/sig: %s", url)
	}

	// The embedded expiry is close to one hour out and verifies.
	var exp int64
	var sig string
	if _, err := fmt.Sscanf(url[strings.Index(url, "exp=")+4:], "%d&sig=%s", &exp, &sig); err != nil {
		t.Fatalf("parse url: %v", err)
	}
	wantExp := time.Now().Add(time.Hour).Unix()
	if exp < wantExp-5 || exp > wantExp+5 {
		t.Errorf("exp = %d, want about %d", exp, wantExp)
	}
	if !store.signer.Verify("user-images", "alice@example.com/0_front.png", exp, sig) {
		t.Error("minted signature should verify")
	}
}
