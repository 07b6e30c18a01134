package repository

import (
	"context"

	"clientrepo/internal/model"
)

// Repository keeps an in-memory working set bound to one Backend.
// Uniqueness and ID generation are computed over the working set; every
// mutation is written through to the backend before it returns.
type Repository struct {
	backend Backend
	items   []model.Client
}

var _ ClientRepository = (*Repository)(nil)

// New binds a repository to backend and loads the working set.
func New(ctx context.Context, backend Backend) (*Repository, error) {
	r := &Repository{backend: backend}
	if err := r.ReadAll(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// ReadAll replaces the working set with the backend contents.
func (r *Repository) ReadAll(ctx context.Context) error {
	items, err := r.backend.LoadAll(ctx)
	if err != nil {
		return err
	}
	if err := validateAll(items); err != nil {
		return err
	}
	if items == nil {
		items = []model.Client{}
	}
	r.items = items
	return nil
}

// WriteAll dumps the working set through the backend.
func (r *Repository) WriteAll(ctx context.Context, location string) error {
	return r.backend.DumpAll(ctx, cloneClients(r.items), location)
}

// Items returns a copy of the working set.
func (r *Repository) Items() []model.Client {
	return cloneClients(r.items)
}

// GetByID returns the client with the given ID, or nil. Negative IDs never match.
func (r *Repository) GetByID(_ context.Context, id int64) (*model.Client, error) {
	if id < 0 {
		return nil, nil
	}
	i := indexByID(r.items, id)
	if i < 0 {
		return nil, nil
	}
	c := r.items[i]
	return &c, nil
}

// GetPage returns clients [(k-1)*n, k*n) of the current ordering.
func (r *Repository) GetPage(_ context.Context, k, n int) ([]model.Client, error) {
	return pageOf(r.items, k, n), nil
}

// SortBy orders the working set ascending by field. The order is not persisted.
func (r *Repository) SortBy(field SortField) {
	sortItems(r.items, field)
}

// Add assigns max(ID)+1 to c, appends it and persists the working set.
func (r *Repository) Add(ctx context.Context, c model.Client) (int64, error) {
	c.ID = nextID(r.items)
	if err := c.Validate(); err != nil {
		return NotAdded, err
	}
	if hasKey(r.items, c, -1) {
		return NotAdded, nil
	}
	prev := r.items
	r.items = append(cloneClients(prev), c)
	if err := r.WriteAll(ctx, ""); err != nil {
		r.items = prev
		return NotAdded, err
	}
	return c.ID, nil
}

// ReplaceByID swaps the client with the given ID for c, keeping the ID.
func (r *Repository) ReplaceByID(ctx context.Context, id int64, c model.Client) (bool, error) {
	if id < 0 {
		return false, nil
	}
	c.ID = id
	if err := c.Validate(); err != nil {
		return false, err
	}
	i := indexByID(r.items, id)
	if i < 0 || hasKey(r.items, c, i) {
		return false, nil
	}
	prev := r.items
	r.items = cloneClients(prev)
	r.items[i] = c
	if err := r.WriteAll(ctx, ""); err != nil {
		r.items = prev
		return false, err
	}
	return true, nil
}

// DeleteByID removes the first client with the given ID.
func (r *Repository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	i := indexByID(r.items, id)
	if i < 0 {
		return false, nil
	}
	prev := r.items
	r.items = append(cloneClients(prev[:i]), prev[i+1:]...)
	if err := r.WriteAll(ctx, ""); err != nil {
		r.items = prev
		return false, err
	}
	return true, nil
}

// Count returns the size of the working set.
func (r *Repository) Count(_ context.Context) (int, error) {
	return len(r.items), nil
}
