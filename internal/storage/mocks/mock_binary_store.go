package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockBinaryStore struct {
	mock.Mock
}

func (m *MockBinaryStore) Save(ctx context.Context, materialType, originalFilename string, r io.Reader, size int64) (string, error) {
	args := m.Called(ctx, materialType, originalFilename, r, size)
	return args.String(0), args.Error(1)
}

func (m *MockBinaryStore) Remove(ctx context.Context, locator string) error {
	args := m.Called(ctx, locator)
	return args.Error(0)
}

func (m *MockBinaryStore) ResolveURL(ctx context.Context, locator string) (string, error) {
	args := m.Called(ctx, locator)
	return args.String(0), args.Error(1)
}
