package mocks

import (
	"context"

	"studenthub/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockMaterialStore struct {
	mock.Mock
}

func (m *MockMaterialStore) Read(ctx context.Context) (*model.Library, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Library), args.Error(1)
}

func (m *MockMaterialStore) Write(ctx context.Context, lib *model.Library) error {
	args := m.Called(ctx, lib)
	return args.Error(0)
}

func (m *MockMaterialStore) Append(ctx context.Context, collection string, mat model.Material) (*model.Material, error) {
	args := m.Called(ctx, collection, mat)
	if f, ok := args.Get(0).(func(context.Context, string, model.Material) *model.Material); ok {
		return f(ctx, collection, mat), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Material), args.Error(1)
}

func (m *MockMaterialStore) MutateAt(ctx context.Context, collection string, pos int, fn func(*model.Material)) (*model.Material, error) {
	args := m.Called(ctx, collection, pos, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Material), args.Error(1)
}

func (m *MockMaterialStore) RemoveAt(ctx context.Context, collection string, pos int) (model.Material, error) {
	args := m.Called(ctx, collection, pos)
	return args.Get(0).(model.Material), args.Error(1)
}
