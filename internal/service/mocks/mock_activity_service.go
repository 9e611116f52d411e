package mocks

import (
	"context"
	"time"

	"licenseadmin/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) List(ctx context.Context, limit, offset int) (*service.ActivityListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ActivityListResult), args.Error(1)
}

func (m *MockActivityService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}
