package mocks

import (
	"context"

	"licenseadmin/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Validate(ctx context.Context, req model.ValidateRequest) (*model.ValidateResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ValidateResult), args.Error(1)
}

func (m *MockAPI) Create(ctx context.Context, adminToken string, req model.CreateRequest) (*model.CreateResult, error) {
	args := m.Called(ctx, adminToken, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CreateResult), args.Error(1)
}

func (m *MockAPI) Stats(ctx context.Context, adminToken string) (*model.Stats, error) {
	args := m.Called(ctx, adminToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stats), args.Error(1)
}
