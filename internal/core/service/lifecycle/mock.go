package lifecycle

import (
	"context"
	"file-drop/internal/core/domain"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockLifecycleService is a mock implementation of LifecycleService
type MockLifecycleService struct {
	mock.Mock
}

// NewMockLifecycleService creates a new MockLifecycleService
func NewMockLifecycleService() *MockLifecycleService {
	return &MockLifecycleService{}
}

func (m *MockLifecycleService) ExpireTransfers(ctx context.Context, now time.Time) (domain.SweepReport, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(domain.SweepReport), args.Error(1)
}

func (m *MockLifecycleService) PurgeLocalFiles(ctx context.Context, now time.Time) (domain.SweepReport, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(domain.SweepReport), args.Error(1)
}

func (m *MockLifecycleService) CollectOrphanChunks(ctx context.Context, now time.Time) (domain.SweepReport, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(domain.SweepReport), args.Error(1)
}
