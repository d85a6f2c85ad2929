package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NotificationLog records one dispatch and its outcome
type NotificationLog struct {
	ID             uuid.UUID      `json:"id"`
	VacancyAlertID *int64         `json:"vacancy_alert_id,omitempty"`
	MessageType    MessageKind    `json:"message_type"`
	MessageContent string         `json:"message_content"`
	RecipientPhone string         `json:"recipient_phone"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	SentAt         time.Time      `json:"sent_at"`
	Success        bool           `json:"success"`
	CorrelationID  string         `json:"correlation_id,omitempty"`
}

// NewNotificationLog builds a log entry for a finished dispatch
func NewNotificationLog(req DispatchRequest, text string, outcome DeliveryOutcome) *NotificationLog {
	return &NotificationLog{
		ID:             uuid.New(),
		VacancyAlertID: req.VacancyAlertID,
		MessageType:    req.Kind,
		MessageContent: text,
		RecipientPhone: req.Phone,
		DeliveryMethod: outcome.Method,
		SentAt:         time.Now().UTC(),
		Success:        outcome.Succeeded,
		CorrelationID:  req.CorrelationID,
	}
}

type NotificationLogFilter struct {
	MessageType    *MessageKind
	DeliveryMethod *DeliveryMethod
	Success        *bool
	VacancyAlertID *int64
	StartDate      *time.Time
	EndDate        *time.Time
	Page           int
	PageSize       int
}

type NotificationLogListResult struct {
	Logs       []*NotificationLog `json:"logs"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

type NotificationLogRepository interface {
	Create(ctx context.Context, log *NotificationLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*NotificationLog, error)
	List(ctx context.Context, filter NotificationLogFilter) (*NotificationLogListResult, error)
}
