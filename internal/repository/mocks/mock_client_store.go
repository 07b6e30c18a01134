package mocks

import (
	"context"

	"clientrepo/internal/model"
	"clientrepo/internal/repository/query"

	"github.com/stretchr/testify/mock"
)

// MockClientStore mocks a query-decorated repository. Page records its
// options as one variadic slice argument.
type MockClientStore struct {
	mock.Mock
}

func (m *MockClientStore) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientStore) Add(ctx context.Context, c model.Client) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientStore) ReplaceByID(ctx context.Context, id int64, c model.Client) (bool, error) {
	args := m.Called(ctx, id, c)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockClientStore) Page(ctx context.Context, k, n int, opts ...query.Option) ([]model.Client, error) {
	args := m.Called(ctx, k, n, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Client), args.Error(1)
}

func (m *MockClientStore) CountWhere(ctx context.Context, p query.Predicate) (int, error) {
	args := m.Called(ctx, p)
	return args.Int(0), args.Error(1)
}
