package repository

import (
	"context"
	"fmt"

	"clientrepo/internal/model"
)

// RowStoreAdapter exposes a RowStore through the ClientRepository contract.
// Reads and writes go to the store; the working set mirrors the store after
// every mutation so that store-assigned IDs are visible.
type RowStoreAdapter struct {
	store RowStore
	items []model.Client
}

var _ ClientRepository = (*RowStoreAdapter)(nil)

// NewRowStoreAdapter wraps store and loads the working set from it.
func NewRowStoreAdapter(ctx context.Context, store RowStore) (*RowStoreAdapter, error) {
	a := &RowStoreAdapter{store: store}
	if err := a.ReadAll(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// ReadAll reloads the working set with every stored row.
func (a *RowStoreAdapter) ReadAll(ctx context.Context) error {
	items, err := a.store.GetAll(ctx)
	if err != nil {
		return err
	}
	if items == nil {
		items = []model.Client{}
	}
	a.items = items
	return nil
}

// WriteAll replaces the stored rows with the working set. The store assigns
// fresh IDs, which are copied back into the working set. location is ignored.
func (a *RowStoreAdapter) WriteAll(ctx context.Context, _ string) error {
	if !a.store.ClearAll(ctx) {
		return fmt.Errorf("%w: clear clients", ErrStorageWrite)
	}
	for i := range a.items {
		id, err := a.store.Add(ctx, a.items[i])
		if err != nil {
			return err
		}
		a.items[i].ID = id
	}
	return nil
}

// Items returns a copy of the working set.
func (a *RowStoreAdapter) Items() []model.Client {
	return cloneClients(a.items)
}

func (a *RowStoreAdapter) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	return a.store.GetByID(ctx, id)
}

func (a *RowStoreAdapter) GetPage(ctx context.Context, k, n int) ([]model.Client, error) {
	return a.store.GetPage(ctx, k, n)
}

// SortBy orders the working set in memory; stored rows are unaffected.
func (a *RowStoreAdapter) SortBy(field SortField) {
	sortItems(a.items, field)
}

// Add checks the key against a fresh copy of the rows and delegates ID
// generation to the store.
func (a *RowStoreAdapter) Add(ctx context.Context, c model.Client) (int64, error) {
	if err := validateWithID(c, 0); err != nil {
		return NotAdded, err
	}
	if err := a.ReadAll(ctx); err != nil {
		return NotAdded, err
	}
	if hasKey(a.items, c, -1) {
		return NotAdded, nil
	}
	id, err := a.store.Add(ctx, c)
	if err != nil {
		return NotAdded, err
	}
	if err := a.ReadAll(ctx); err != nil {
		return id, err
	}
	return id, nil
}

// ReplaceByID checks the key against every other row before delegating.
func (a *RowStoreAdapter) ReplaceByID(ctx context.Context, id int64, c model.Client) (bool, error) {
	if id < 0 {
		return false, nil
	}
	if err := validateWithID(c, id); err != nil {
		return false, err
	}
	if err := a.ReadAll(ctx); err != nil {
		return false, err
	}
	if hasKey(a.items, c, indexByID(a.items, id)) {
		return false, nil
	}
	ok, err := a.store.ReplaceByID(ctx, id, c)
	if err != nil {
		return false, err
	}
	if err := a.ReadAll(ctx); err != nil {
		return ok, err
	}
	return ok, nil
}

func (a *RowStoreAdapter) DeleteByID(ctx context.Context, id int64) (bool, error) {
	ok, err := a.store.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}
	if err := a.ReadAll(ctx); err != nil {
		return ok, err
	}
	return ok, nil
}

func (a *RowStoreAdapter) Count(ctx context.Context) (int, error) {
	return a.store.Count(ctx)
}
