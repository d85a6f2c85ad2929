package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/victorsprings/notification-service/internal/domain"
)

const (
	readyQueueKey     = "notification:jobs"
	scheduledQueueKey = "notification:scheduled"
)

// Queue implements domain.Queue using Redis Sorted Sets. Ready jobs are scored
// by priority weight plus enqueue time; scheduled jobs by their due time.
type Queue struct {
	client *Client
}

// NewQueue creates a new Queue
func NewQueue(client *Client) *Queue {
	return &Queue{client: client}
}

func readyScore(job *domain.DispatchJob, now time.Time) float64 {
	// Calculate score: priority weight + timestamp for ordering
	return float64(job.Priority.Weight()) + float64(now.UnixNano())/1e18
}

// Enqueue adds a job to the ready queue
func (q *Queue) Enqueue(ctx context.Context, job *domain.DispatchJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch job: %w", err)
	}

	if err := q.client.client.ZAdd(ctx, readyQueueKey, redis.Z{
		Score:  readyScore(job, time.Now()),
		Member: string(data),
	}).Err(); err != nil {
		return fmt.Errorf("failed to enqueue job: %w", err)
	}

	return nil
}

// Dequeue removes and returns the next job from the ready queue
func (q *Queue) Dequeue(ctx context.Context) (*domain.DispatchJob, error) {
	// Use ZPOPMIN to atomically get and remove the lowest score item
	results, err := q.client.client.ZPopMin(ctx, readyQueueKey, 1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue job: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	member, ok := results[0].Member.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected queue member type %T", results[0].Member)
	}
	return decodeJob(member)
}

// Depth returns the number of ready jobs
func (q *Queue) Depth(ctx context.Context) (int64, error) {
	count, err := q.client.client.ZCard(ctx, readyQueueKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue depth: %w", err)
	}
	return count, nil
}

// Schedule parks a job until job.ScheduledAt
func (q *Queue) Schedule(ctx context.Context, job *domain.DispatchJob) error {
	if job.ScheduledAt == nil {
		return q.Enqueue(ctx, job)
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch job: %w", err)
	}

	if err := q.client.client.ZAdd(ctx, scheduledQueueKey, redis.Z{
		Score:  float64(job.ScheduledAt.Unix()),
		Member: string(data),
	}).Err(); err != nil {
		return fmt.Errorf("failed to schedule job: %w", err)
	}

	return nil
}

// PromoteDue moves due scheduled jobs onto the ready queue. A job is only
// moved by the caller whose ZREM removed it, so concurrent schedulers never
// promote the same job twice.
func (q *Queue) PromoteDue(ctx context.Context, now time.Time, limit int64) (int, error) {
	members, err := q.client.client.ZRangeByScore(ctx, scheduledQueueKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.Unix(), 10),
		Count: limit,
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read scheduled jobs: %w", err)
	}

	moved := 0
	for _, member := range members {
		removed, err := q.client.client.ZRem(ctx, scheduledQueueKey, member).Result()
		if err != nil {
			return moved, fmt.Errorf("failed to claim scheduled job: %w", err)
		}
		if removed == 0 {
			continue
		}

		job, err := decodeJob(member)
		if err != nil {
			return moved, err
		}

		if err := q.client.client.ZAdd(ctx, readyQueueKey, redis.Z{
			Score:  readyScore(job, now),
			Member: member,
		}).Err(); err != nil {
			return moved, fmt.Errorf("failed to promote job %s: %w", job.ID, err)
		}
		moved++
	}

	return moved, nil
}

// ScheduledDepth returns the number of parked jobs
func (q *Queue) ScheduledDepth(ctx context.Context) (int64, error) {
	count, err := q.client.client.ZCard(ctx, scheduledQueueKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get scheduled depth: %w", err)
	}
	return count, nil
}

func decodeJob(member string) (*domain.DispatchJob, error) {
	var job domain.DispatchJob
	if err := json.Unmarshal([]byte(member), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dispatch job: %w", err)
	}
	return &job, nil
}
