// Package file stores the client collection as a single JSON or YAML document.
package file

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"clientrepo/internal/codec"
	"clientrepo/internal/model"
	"clientrepo/internal/repository"
)

const filePerm = 0o644

// Backend reads and writes one serialized document on an afero filesystem.
// Writes overwrite the file in place; an interrupted write may leave it corrupted.
type Backend struct {
	fs    afero.Fs
	path  string
	codec codec.Codec
}

var _ repository.Backend = (*Backend)(nil)

// New creates a backend for path on fs using c.
func New(fs afero.Fs, path string, c codec.Codec) *Backend {
	return &Backend{fs: fs, path: path, codec: c}
}

// NewJSON creates a JSON backend on the OS filesystem.
func NewJSON(path string) *Backend {
	return New(afero.NewOsFs(), path, codec.JSON{})
}

// NewYAML creates a YAML backend on the OS filesystem.
func NewYAML(path string) *Backend {
	return New(afero.NewOsFs(), path, codec.YAML{})
}

// Open creates an OS filesystem backend whose format follows the file extension.
func Open(path string) (*Backend, error) {
	c, err := codec.ForPath(path)
	if err != nil {
		return nil, err
	}
	return New(afero.NewOsFs(), path, c), nil
}

// Path returns the bound file path.
func (b *Backend) Path() string {
	return b.path
}

// LoadAll decodes the file. A missing file is an empty collection.
func (b *Backend) LoadAll(_ context.Context) ([]model.Client, error) {
	exists, err := afero.Exists(b.fs, b.path)
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", repository.ErrStorageUnavailable, b.path, err)
	}
	if !exists {
		return []model.Client{}, nil
	}

	data, err := afero.ReadFile(b.fs, b.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", repository.ErrStorageUnavailable, b.path, err)
	}
	clients, err := b.codec.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s %s: %w", repository.ErrStorageUnavailable, b.codec.Name(), b.path, err)
	}
	return clients, nil
}

// DumpAll overwrites the bound file, or location when it is non-empty.
func (b *Backend) DumpAll(_ context.Context, clients []model.Client, location string) error {
	target := b.path
	if location != "" {
		target = location
	}

	data, err := b.codec.Marshal(clients)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", repository.ErrStorageWrite, b.codec.Name(), err)
	}
	if err := afero.WriteFile(b.fs, target, data, filePerm); err != nil {
		return fmt.Errorf("%w: write %s: %w", repository.ErrStorageWrite, target, err)
	}
	return nil
}
