package blob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore is the embedded on-disk backend for development boxes without
// an object store. Signed URLs point back at the app's own blob route,
// signed with the app secret.
type BadgerStore struct {
	db      *badger.DB
	baseURL string
	signer  *URLSigner
}

func NewBadgerStore(dirPath, baseURL string, signer *URLSigner) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dirPath).
		WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob database: %w", err)
	}

	return &BadgerStore{
		db:      db,
		baseURL: baseURL,
		signer:  signer,
	}, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func blobKey(container, key string) []byte {
	return []byte(container + "/" + key)
}

func (s *BadgerStore) Upload(ctx context.Context, container, key string, data []byte, contentType string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(blobKey(container, key), data)
	})
}

func (s *BadgerStore) Download(ctx context.Context, container, key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(blobKey(container, key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *BadgerStore) SignedURL(ctx context.Context, container, key string, ttl time.Duration) (string, error) {
	expiresAt := time.Now().Add(ttl).Unix()
	sig := s.signer.Sign(container, key, expiresAt)
	return fmt.Sprintf("%s/api/blob/v1/%s/%s?exp=%d&sig=%s",
		s.baseURL, container, key, expiresAt, sig), nil
}

func (s *BadgerStore) Delete(ctx context.Context, container, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(blobKey(container, key))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	return err
}
