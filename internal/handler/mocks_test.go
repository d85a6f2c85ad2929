package handler

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/victorsprings/notification-service/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Enqueue(ctx context.Context, job *domain.DispatchJob) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockQueue) Dequeue(ctx context.Context) (*domain.DispatchJob, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DispatchJob), args.Error(1)
}

func (m *MockQueue) Depth(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQueue) Schedule(ctx context.Context, job *domain.DispatchJob) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockQueue) PromoteDue(ctx context.Context, now time.Time, limit int64) (int, error) {
	args := m.Called(ctx, now, limit)
	return args.Int(0), args.Error(1)
}

func (m *MockQueue) ScheduledDepth(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) Create(ctx context.Context, log *domain.NotificationLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.NotificationLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationLog), args.Error(1)
}

func (m *MockLogRepository) List(ctx context.Context, filter domain.NotificationLogFilter) (*domain.NotificationLogListResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationLogListResult), args.Error(1)
}

type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) ListActiveByUnitType(ctx context.Context, unitTypeID int64, now time.Time) ([]*domain.VacancyAlert, error) {
	args := m.Called(ctx, unitTypeID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.VacancyAlert), args.Error(1)
}

type MockBridgeProbe struct {
	mock.Mock
}

func (m *MockBridgeProbe) Status(ctx context.Context) (*domain.BridgeStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BridgeStatus), args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendCustom(ctx context.Context, phone, text string) domain.DeliveryOutcome {
	return m.Called(ctx, phone, text).Get(0).(domain.DeliveryOutcome)
}

type MockRate struct {
	mock.Mock
}

func (m *MockRate) CurrentRate(ctx context.Context, scope string) (int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Error(1)
}
