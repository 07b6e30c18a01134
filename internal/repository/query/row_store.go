package query

import (
	"context"

	"clientrepo/internal/model"
	"clientrepo/internal/repository"
)

// RowStore decorates a repository.RowStore.
type RowStore struct {
	inner repository.RowStore
}

var _ repository.RowStore = (*RowStore)(nil)

// NewRowStore wraps inner.
func NewRowStore(inner repository.RowStore) *RowStore {
	return &RowStore{inner: inner}
}

// Page loads every row, then filters, sorts and returns page k of size n.
func (s *RowStore) Page(ctx context.Context, k, n int, opts ...Option) ([]model.Client, error) {
	if n <= 0 || k <= 0 {
		return []model.Client{}, nil
	}
	items, err := s.inner.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return apply(items, k, n, opts), nil
}

// CountWhere counts rows matching p. A nil predicate delegates to Count.
func (s *RowStore) CountWhere(ctx context.Context, p Predicate) (int, error) {
	if p == nil {
		return s.inner.Count(ctx)
	}
	items, err := s.inner.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	return countMatching(items, p), nil
}

func (s *RowStore) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	return s.inner.GetByID(ctx, id)
}

func (s *RowStore) GetPage(ctx context.Context, k, n int) ([]model.Client, error) {
	return s.inner.GetPage(ctx, k, n)
}

func (s *RowStore) Add(ctx context.Context, c model.Client) (int64, error) {
	return s.inner.Add(ctx, c)
}

func (s *RowStore) ReplaceByID(ctx context.Context, id int64, c model.Client) (bool, error) {
	return s.inner.ReplaceByID(ctx, id, c)
}

func (s *RowStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	return s.inner.DeleteByID(ctx, id)
}

func (s *RowStore) Count(ctx context.Context) (int, error) {
	return s.inner.Count(ctx)
}

func (s *RowStore) GetAll(ctx context.Context) ([]model.Client, error) {
	return s.inner.GetAll(ctx)
}

func (s *RowStore) ClearAll(ctx context.Context) bool {
	return s.inner.ClearAll(ctx)
}
