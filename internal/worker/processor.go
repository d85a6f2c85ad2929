package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/victorsprings/notification-service/internal/config"
	"github.com/victorsprings/notification-service/internal/domain"
)

// RateLimitScope is the rate limiter key shared by every worker
const RateLimitScope = "dispatch"

// Dispatcher delivers one request
type Dispatcher interface {
	Dispatch(ctx context.Context, req domain.DispatchRequest) (domain.DeliveryOutcome, error)
}

// Processor runs the worker pool that drains the dispatch queue
type Processor struct {
	queue        domain.Queue
	rateLimiter  domain.RateLimiter
	dispatcher   Dispatcher
	logger       *slog.Logger
	workerConfig config.WorkerConfig
	idleWait     time.Duration

	mu         sync.Mutex
	running    bool
	wg         sync.WaitGroup
	cancelFunc context.CancelFunc
}

// NewProcessor creates a new Processor
func NewProcessor(
	queue domain.Queue,
	rateLimiter domain.RateLimiter,
	dispatcher Dispatcher,
	logger *slog.Logger,
	workerConfig config.WorkerConfig,
) *Processor {
	return &Processor{
		queue:        queue,
		rateLimiter:  rateLimiter,
		dispatcher:   dispatcher,
		logger:       logger,
		workerConfig: workerConfig,
		idleWait:     100 * time.Millisecond,
	}
}

// Start starts the worker pool
func (p *Processor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	ctx, p.cancelFunc = context.WithCancel(ctx)

	count := p.workerConfig.Count
	if count < 1 {
		count = 1
	}
	for i := 0; i < count; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	p.logger.Info("processor started", "workers", count)
	return nil
}

// Stop stops the worker pool. Jobs being dispatched when Stop is called may
// be lost.
func (p *Processor) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	if p.cancelFunc != nil {
		p.cancelFunc()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("processor stopped gracefully")
	case <-time.After(30 * time.Second):
		p.logger.Warn("processor stop timed out")
	}
}

func (p *Processor) worker(ctx context.Context, workerID int) {
	defer p.wg.Done()

	logger := p.logger.With("worker_id", workerID)
	logger.Info("worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopped")
			return
		default:
			if err := p.processNext(ctx, logger); err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				logger.Error("failed to process job", "error", err)
				p.pause(ctx)
			}
		}
	}
}

// processNext dispatches the next job from the queue
func (p *Processor) processNext(ctx context.Context, logger *slog.Logger) error {
	if err := p.rateLimiter.Wait(ctx, RateLimitScope); err != nil {
		return err
	}

	job, err := p.queue.Dequeue(ctx)
	if err != nil {
		return err
	}

	if job == nil {
		p.pause(ctx)
		return ctx.Err()
	}

	p.process(ctx, job, logger)
	return nil
}

func (p *Processor) process(ctx context.Context, job *domain.DispatchJob, logger *slog.Logger) {
	logger = logger.With(
		"job_id", job.ID,
		"kind", job.Request.Kind,
		"correlation_id", job.Request.CorrelationID,
	)

	outcome, err := p.dispatcher.Dispatch(ctx, job.Request)
	if err != nil {
		logger.Error("dropping undeliverable job", "error", err)
		return
	}

	logger.Debug("job processed",
		"succeeded", outcome.Succeeded,
		"method", outcome.Method,
		"queued_for", time.Since(job.EnqueuedAt),
	)
}

func (p *Processor) pause(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(p.idleWait):
	}
}
