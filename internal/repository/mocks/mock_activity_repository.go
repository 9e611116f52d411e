package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"licenseadmin/internal/model"
	"licenseadmin/internal/repository"
)

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, a *model.Activity) (*model.Activity, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Activity), args.Error(1)
}

func (m *MockActivityRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Activity], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Activity]), args.Error(1)
}

func (m *MockActivityRepository) ListBefore(ctx context.Context, before time.Time) ([]model.Activity, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Activity), args.Error(1)
}

func (m *MockActivityRepository) Prune(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}
