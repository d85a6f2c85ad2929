package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSchedulerService_PromoteDue(t *testing.T) {
	ctx := context.Background()

	t.Run("drains full batches", func(t *testing.T) {
		mockQueue := new(MockQueue)
		s := NewSchedulerService(mockQueue, testLogger(), time.Second)

		mockQueue.On("PromoteDue", ctx, mock.AnythingOfType("time.Time"), int64(100)).Return(100, nil).Twice()
		mockQueue.On("PromoteDue", ctx, mock.AnythingOfType("time.Time"), int64(100)).Return(7, nil).Once()

		assert.Equal(t, 207, s.promoteDue(ctx))
		mockQueue.AssertExpectations(t)
	})

	t.Run("nothing due", func(t *testing.T) {
		mockQueue := new(MockQueue)
		s := NewSchedulerService(mockQueue, testLogger(), time.Second)

		mockQueue.On("PromoteDue", ctx, mock.Anything, int64(100)).Return(0, nil).Once()

		assert.Zero(t, s.promoteDue(ctx))
	})

	t.Run("queue error stops the pass", func(t *testing.T) {
		mockQueue := new(MockQueue)
		s := NewSchedulerService(mockQueue, testLogger(), time.Second)

		mockQueue.On("PromoteDue", ctx, mock.Anything, int64(100)).Return(0, errors.New("redis down")).Once()

		assert.Zero(t, s.promoteDue(ctx))
		mockQueue.AssertNumberOfCalls(t, "PromoteDue", 1)
	})
}

func TestSchedulerService_StartStop(t *testing.T) {
	called := make(chan struct{}, 1)
	mockQueue := new(MockQueue)
	mockQueue.On("PromoteDue", mock.Anything, mock.Anything, int64(100)).
		Run(func(mock.Arguments) {
			select {
			case called <- struct{}{}:
			default:
			}
		}).
		Return(0, nil)

	s := NewSchedulerService(mockQueue, testLogger(), 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.NoError(t, s.Start(ctx))
	assert.NoError(t, s.Start(ctx))

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("scheduler never polled the queue")
	}

	s.Stop()
	s.Stop()
}
