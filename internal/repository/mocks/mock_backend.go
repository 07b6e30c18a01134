package mocks

import (
	"context"

	"clientrepo/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) LoadAll(ctx context.Context) ([]model.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Client), args.Error(1)
}

func (m *MockBackend) DumpAll(ctx context.Context, clients []model.Client, location string) error {
	args := m.Called(ctx, clients, location)
	return args.Error(0)
}
