package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/victorsprings/notification-service/internal/domain"
)

// SchedulerService moves scheduled jobs onto the ready queue once they are due
type SchedulerService struct {
	queue     domain.Queue
	logger    *slog.Logger
	interval  time.Duration
	batchSize int64

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
}

// NewSchedulerService creates a new SchedulerService
func NewSchedulerService(queue domain.Queue, logger *slog.Logger, interval time.Duration) *SchedulerService {
	return &SchedulerService{
		queue:     queue,
		logger:    logger,
		interval:  interval,
		batchSize: 100,
	}
}

// Start starts the scheduler
func (s *SchedulerService) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	s.logger.Info("scheduler started", "interval", s.interval)

	go s.run(ctx, s.stopChan)
	return nil
}

// Stop stops the scheduler
func (s *SchedulerService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	close(s.stopChan)
	s.running = false
	s.logger.Info("scheduler stopped")
}

func (s *SchedulerService) run(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.promoteDue(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			s.promoteDue(ctx)
		}
	}
}

// promoteDue drains every due job, one batch at a time
func (s *SchedulerService) promoteDue(ctx context.Context) int {
	total := 0
	for {
		moved, err := s.queue.PromoteDue(ctx, time.Now().UTC(), s.batchSize)
		if err != nil {
			s.logger.Error("failed to promote scheduled notifications", "error", err)
			break
		}
		total += moved
		if int64(moved) < s.batchSize {
			break
		}
	}

	if total > 0 {
		s.logger.Info("scheduled notifications queued", "count", total)
	}
	return total
}
