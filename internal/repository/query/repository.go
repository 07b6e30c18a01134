package query

import (
	"context"

	"clientrepo/internal/model"
	"clientrepo/internal/repository"
)

// Repository decorates a repository.ClientRepository.
type Repository struct {
	inner repository.ClientRepository
}

var _ repository.ClientRepository = (*Repository)(nil)

// NewRepository wraps inner.
func NewRepository(inner repository.ClientRepository) *Repository {
	return &Repository{inner: inner}
}

// Page reloads the working set, then filters, sorts and returns page k of size n.
// A partial last page is returned as is.
func (r *Repository) Page(ctx context.Context, k, n int, opts ...Option) ([]model.Client, error) {
	if n <= 0 || k <= 0 {
		return []model.Client{}, nil
	}
	if err := r.inner.ReadAll(ctx); err != nil {
		return nil, err
	}
	return apply(r.inner.Items(), k, n, opts), nil
}

// CountWhere counts clients matching p after reloading the working set.
// A nil predicate delegates to Count without reloading.
func (r *Repository) CountWhere(ctx context.Context, p Predicate) (int, error) {
	if p == nil {
		return r.inner.Count(ctx)
	}
	if err := r.inner.ReadAll(ctx); err != nil {
		return 0, err
	}
	return countMatching(r.inner.Items(), p), nil
}

func (r *Repository) ReadAll(ctx context.Context) error {
	return r.inner.ReadAll(ctx)
}

func (r *Repository) WriteAll(ctx context.Context, location string) error {
	return r.inner.WriteAll(ctx, location)
}

func (r *Repository) Items() []model.Client {
	return r.inner.Items()
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	return r.inner.GetByID(ctx, id)
}

func (r *Repository) GetPage(ctx context.Context, k, n int) ([]model.Client, error) {
	return r.inner.GetPage(ctx, k, n)
}

func (r *Repository) SortBy(field repository.SortField) {
	r.inner.SortBy(field)
}

func (r *Repository) Add(ctx context.Context, c model.Client) (int64, error) {
	return r.inner.Add(ctx, c)
}

func (r *Repository) ReplaceByID(ctx context.Context, id int64, c model.Client) (bool, error) {
	return r.inner.ReplaceByID(ctx, id, c)
}

func (r *Repository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	return r.inner.DeleteByID(ctx, id)
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	return r.inner.Count(ctx)
}
