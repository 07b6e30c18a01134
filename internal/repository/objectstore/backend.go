// Package objectstore keeps the serialized client collection as a single object
// in S3-compatible storage.
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"clientrepo/internal/codec"
	"clientrepo/internal/model"
	"clientrepo/internal/repository"
	"clientrepo/internal/storage"
)

// Backend reads and writes one encoded document under a fixed object key.
type Backend struct {
	store storage.Storage
	key   string
	codec codec.Codec
}

var _ repository.Backend = (*Backend)(nil)

// New creates a backend storing the collection at key.
func New(store storage.Storage, key string, c codec.Codec) *Backend {
	return &Backend{store: store, key: key, codec: c}
}

// LoadAll downloads and decodes the object. A missing object is an empty collection.
func (b *Backend) LoadAll(ctx context.Context) ([]model.Client, error) {
	rc, _, err := b.store.Get(ctx, b.key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return []model.Client{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get object %s: %w", repository.ErrStorageUnavailable, b.key, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read object %s: %w", repository.ErrStorageUnavailable, b.key, err)
	}
	clients, err := b.codec.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s object %s: %w", repository.ErrStorageUnavailable, b.codec.Name(), b.key, err)
	}
	return clients, nil
}

// DumpAll uploads the encoded collection to the bound key, or to location when set.
func (b *Backend) DumpAll(ctx context.Context, clients []model.Client, location string) error {
	key := b.key
	if location != "" {
		key = location
	}

	data, err := b.codec.Marshal(clients)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", repository.ErrStorageWrite, b.codec.Name(), err)
	}
	_, err = b.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: b.codec.ContentType(),
	})
	if err != nil {
		return fmt.Errorf("%w: put object %s: %w", repository.ErrStorageWrite, key, err)
	}
	return nil
}
