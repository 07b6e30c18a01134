package mocks

import (
	"context"

	"clientrepo/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockRowStore struct {
	mock.Mock
}

func (m *MockRowStore) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockRowStore) GetPage(ctx context.Context, k, n int) ([]model.Client, error) {
	args := m.Called(ctx, k, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Client), args.Error(1)
}

func (m *MockRowStore) Add(ctx context.Context, c model.Client) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRowStore) ReplaceByID(ctx context.Context, id int64, c model.Client) (bool, error) {
	args := m.Called(ctx, id, c)
	return args.Bool(0), args.Error(1)
}

func (m *MockRowStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRowStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRowStore) GetAll(ctx context.Context) ([]model.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Client), args.Error(1)
}

func (m *MockRowStore) ClearAll(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}
