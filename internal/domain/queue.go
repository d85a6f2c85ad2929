package domain

import (
	"context"
	"time"
)

// Queue holds dispatch jobs for the worker pool
type Queue interface {
	// Enqueue adds a job to the ready queue
	Enqueue(ctx context.Context, job *DispatchJob) error

	// Dequeue removes and returns the highest priority job, or nil when empty
	Dequeue(ctx context.Context) (*DispatchJob, error)

	// Depth returns the number of ready jobs
	Depth(ctx context.Context) (int64, error)

	// Schedule parks a job until job.ScheduledAt
	Schedule(ctx context.Context, job *DispatchJob) error

	// PromoteDue moves up to limit scheduled jobs due at or before now to the
	// ready queue and returns how many were moved.
	PromoteDue(ctx context.Context, now time.Time, limit int64) (int, error)

	// ScheduledDepth returns the number of parked jobs
	ScheduledDepth(ctx context.Context) (int64, error)
}

// RateLimiter throttles outbound dispatches per scope
type RateLimiter interface {
	// Allow checks if a request is allowed under the rate limit
	Allow(ctx context.Context, scope string) (bool, error)

	// Wait blocks until a request is allowed
	Wait(ctx context.Context, scope string) error

	// CurrentRate returns the number of requests in the current window
	CurrentRate(ctx context.Context, scope string) (int64, error)
}
