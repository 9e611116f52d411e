package mocks

import (
	"context"

	"licenseadmin/internal/model"
	"licenseadmin/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockLicenseService struct {
	mock.Mock
}

func (m *MockLicenseService) Validate(ctx context.Context, in service.ValidateInput) (*model.ValidateResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ValidateResult), args.Error(1)
}

func (m *MockLicenseService) Create(ctx context.Context, in service.CreateInput) (*model.CreateResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CreateResult), args.Error(1)
}

func (m *MockLicenseService) Stats(ctx context.Context, adminToken string) (*model.Stats, error) {
	args := m.Called(ctx, adminToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stats), args.Error(1)
}
