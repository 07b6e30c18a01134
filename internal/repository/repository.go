// Package repository contains the storage-agnostic client repository, the backend
// contracts it is built on, and the adapter for row-oriented relational stores.
// Concrete backends live in subpackages (file, objectstore, postgres).
package repository

import (
	"context"
	"errors"

	"clientrepo/internal/model"
)

var (
	// ErrStorageUnavailable is wrapped when a medium cannot be read or decoded.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrStorageWrite is wrapped when a medium cannot be written.
	ErrStorageWrite = errors.New("storage write failed")
)

// NotAdded is returned by Add when a client with the same key already exists.
const NotAdded int64 = -1

// SortField names a field the working set can be ordered by.
type SortField string

const (
	SortByID       SortField = "id"
	SortByHaircut  SortField = "haircut"
	SortByDiscount SortField = "discount"
	SortByLastName SortField = "last_name"
)

// Backend translates between a collection of clients and a durable medium.
type Backend interface {
	// LoadAll returns every stored client. A missing or empty medium yields an empty slice.
	LoadAll(ctx context.Context) ([]model.Client, error)

	// DumpAll overwrites the medium with clients. When location is non-empty the
	// clients are written there instead of the bound medium.
	DumpAll(ctx context.Context, clients []model.Client, location string) error
}

// ClientRepository is the record-level contract shared by every repository variant.
// Not-found and key conflicts are reported through return values, never as errors.
type ClientRepository interface {
	// ReadAll replaces the working set with the backend contents.
	ReadAll(ctx context.Context) error

	// WriteAll persists the working set, optionally to an alternate location.
	WriteAll(ctx context.Context, location string) error

	// Items returns a copy of the working set in its current order.
	Items() []model.Client

	// GetByID returns the client with the given ID, or nil.
	GetByID(ctx context.Context, id int64) (*model.Client, error)

	// GetPage returns the k-th page (1-indexed) of n clients.
	GetPage(ctx context.Context, k, n int) ([]model.Client, error)

	// SortBy reorders the working set in place. Unknown fields sort by last name.
	SortBy(field SortField)

	// Add stores a client and returns its new ID, or NotAdded on key conflict.
	Add(ctx context.Context, c model.Client) (int64, error)

	// ReplaceByID replaces the client with the given ID. It reports false when the
	// ID is unknown or the new key collides with another client.
	ReplaceByID(ctx context.Context, id int64, c model.Client) (bool, error)

	// DeleteByID removes the client with the given ID and reports whether one was removed.
	DeleteByID(ctx context.Context, id int64) (bool, error)

	// Count returns the number of stored clients.
	Count(ctx context.Context) (int, error)
}

// RowStore is the narrow row-level contract of a relational store.
// Identifier generation belongs to the store.
type RowStore interface {
	GetByID(ctx context.Context, id int64) (*model.Client, error)
	GetPage(ctx context.Context, k, n int) ([]model.Client, error)
	Add(ctx context.Context, c model.Client) (int64, error)
	ReplaceByID(ctx context.Context, id int64, c model.Client) (bool, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
	GetAll(ctx context.Context) ([]model.Client, error)

	// ClearAll removes every row and resets ID generation. Failures are logged
	// and reported as false.
	ClearAll(ctx context.Context) bool
}
