package mocks

import (
	"context"

	"studenthub/internal/model"
	"studenthub/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockMaterialService struct {
	mock.Mock
}

func (m *MockMaterialService) Library(ctx context.Context) (*model.Library, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Library), args.Error(1)
}

func (m *MockMaterialService) Upload(ctx context.Context, in service.UploadInput) (*model.Material, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Material), args.Error(1)
}

func (m *MockMaterialService) Download(ctx context.Context, materialType string, pos int) (string, error) {
	args := m.Called(ctx, materialType, pos)
	return args.String(0), args.Error(1)
}

func (m *MockMaterialService) Delete(ctx context.Context, materialType string, pos int) (model.Material, error) {
	args := m.Called(ctx, materialType, pos)
	return args.Get(0).(model.Material), args.Error(1)
}
