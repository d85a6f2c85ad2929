package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/victorsprings/notification-service/internal/domain"
)

// maxCustomLength allows up to 4 SMS segments
const maxCustomLength = 160 * 4

// NotificationService accepts dispatch requests from HTTP callers and hands
// them to the background queue.
type NotificationService struct {
	queue  domain.Queue
	logs   domain.NotificationLogRepository
	alerts domain.VacancyAlertRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	queue domain.Queue,
	logs domain.NotificationLogRepository,
	alerts domain.VacancyAlertRepository,
	logger *slog.Logger,
) *NotificationService {
	return &NotificationService{
		queue:  queue,
		logs:   logs,
		alerts: alerts,
		logger: logger,
		now:    time.Now,
	}
}

// QueueRequest represents a request to queue a notification
type QueueRequest struct {
	Kind          domain.MessageKind
	Phone         string
	Data          domain.EventData
	Text          string
	ScheduledAt   *time.Time
	CorrelationID string
}

// Queue validates req and places it on the ready queue, or the scheduled
// queue when ScheduledAt is set.
func (s *NotificationService) Queue(ctx context.Context, req QueueRequest) (*domain.DispatchJob, error) {
	dispatchReq, err := s.buildRequest(req)
	if err != nil {
		return nil, err
	}

	job := domain.NewDispatchJob(dispatchReq)
	if err := s.place(ctx, job, req.ScheduledAt); err != nil {
		return nil, err
	}

	s.logger.Info("notification queued",
		"job_id", job.ID,
		"kind", job.Request.Kind,
		"priority", job.Priority,
		"scheduled", job.ScheduledAt != nil,
		"correlation_id", req.CorrelationID,
	)

	return job, nil
}

// UnitAvailableRequest announces a freed unit to its waitlist
type UnitAvailableRequest struct {
	UnitTypeID    int64
	PropertyName  string
	UnitName      string
	Price         float64
	CorrelationID string
}

// WaitlistResult summarizes a waitlist fan-out
type WaitlistResult struct {
	Matched int         `json:"matched"`
	Queued  int         `json:"queued"`
	JobIDs  []uuid.UUID `json:"job_ids"`
}

// NotifyWaitlist queues one unit_available notification per active alert for
// the unit type. Alerts that fail to queue are logged and skipped.
func (s *NotificationService) NotifyWaitlist(ctx context.Context, req UnitAvailableRequest) (*WaitlistResult, error) {
	if req.UnitTypeID <= 0 {
		return nil, domain.NewValidationError("unit_type_id", "unit_type_id must be positive")
	}

	alerts, err := s.alerts.ListActiveByUnitType(ctx, req.UnitTypeID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list vacancy alerts: %w", err)
	}

	result := &WaitlistResult{Matched: len(alerts), JobIDs: make([]uuid.UUID, 0, len(alerts))}
	var errs []error

	for _, alert := range alerts {
		event := domain.UnitAvailable{
			ContactName:  alert.ContactName,
			PropertyName: req.PropertyName,
			UnitName:     req.UnitName,
			Price:        req.Price,
		}

		alertID := alert.ID
		job := domain.NewDispatchJob(domain.DispatchRequest{
			Kind:           event.Kind(),
			Phone:          alert.ContactPhone,
			Data:           event.Data(),
			VacancyAlertID: &alertID,
			CorrelationID:  req.CorrelationID,
		})

		if err := s.queue.Enqueue(ctx, job); err != nil {
			s.logger.Error("failed to queue waitlist notification",
				"vacancy_alert_id", alert.ID,
				"error", err,
			)
			errs = append(errs, err)
			continue
		}

		result.Queued++
		result.JobIDs = append(result.JobIDs, job.ID)
	}

	s.logger.Info("waitlist notified",
		"unit_type_id", req.UnitTypeID,
		"matched", result.Matched,
		"queued", result.Queued,
	)

	if result.Matched > 0 && result.Queued == 0 {
		return result, fmt.Errorf("%w: %w", domain.ErrQueueUnavailable, errors.Join(errs...))
	}
	return result, nil
}

// ListLogs lists notification log entries with filters
func (s *NotificationService) ListLogs(ctx context.Context, filter domain.NotificationLogFilter) (*domain.NotificationLogListResult, error) {
	return s.logs.List(ctx, filter)
}

// GetLog retrieves a notification log entry by ID
func (s *NotificationService) GetLog(ctx context.Context, id uuid.UUID) (*domain.NotificationLog, error) {
	return s.logs.GetByID(ctx, id)
}

// QueueDepths returns ready and scheduled job counts
func (s *NotificationService) QueueDepths(ctx context.Context) (ready, scheduled int64, err error) {
	if ready, err = s.queue.Depth(ctx); err != nil {
		return 0, 0, err
	}
	if scheduled, err = s.queue.ScheduledDepth(ctx); err != nil {
		return 0, 0, err
	}
	return ready, scheduled, nil
}

func (s *NotificationService) buildRequest(req QueueRequest) (domain.DispatchRequest, error) {
	if req.Phone == "" {
		return domain.DispatchRequest{}, domain.NewValidationError("phone", "phone is required")
	}

	if req.Kind == domain.KindCustom {
		if req.Text == "" {
			return domain.DispatchRequest{}, domain.NewValidationError("message", "message is required")
		}
		if len(req.Text) > maxCustomLength {
			return domain.DispatchRequest{}, domain.NewValidationError("message",
				fmt.Sprintf("message exceeds maximum length of %d characters", maxCustomLength))
		}
		dispatchReq := domain.NewCustomRequest(req.Phone, req.Text)
		dispatchReq.CorrelationID = req.CorrelationID
		return dispatchReq, nil
	}

	dispatchReq, err := domain.NewDispatchRequest(req.Kind, req.Phone, req.Data)
	if err != nil {
		return domain.DispatchRequest{}, err
	}
	dispatchReq.CorrelationID = req.CorrelationID
	return dispatchReq, nil
}

func (s *NotificationService) place(ctx context.Context, job *domain.DispatchJob, at *time.Time) error {
	if at == nil {
		if err := s.queue.Enqueue(ctx, job); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrQueueUnavailable, err)
		}
		return nil
	}

	if at.Before(s.now()) {
		return domain.NewValidationError("scheduled_at", "scheduled time must be in the future")
	}
	scheduled := at.UTC()
	job.ScheduledAt = &scheduled

	if err := s.queue.Schedule(ctx, job); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrQueueUnavailable, err)
	}
	return nil
}
