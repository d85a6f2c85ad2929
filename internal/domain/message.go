package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MessageKind identifies the business event a notification belongs to
type MessageKind string

const (
	KindBookingConfirmation   MessageKind = "booking_confirmation"
	KindBookingReminder       MessageKind = "booking_reminder"
	KindPaymentReminder       MessageKind = "payment_reminder"
	KindSiteVisitRequest      MessageKind = "site_visit_request"
	KindSiteVisitConfirmation MessageKind = "site_visit_confirmation"
	KindExpressInterest       MessageKind = "express_interest"
	KindUnitAvailable         MessageKind = "unit_available"
	KindSiteVisitReminder     MessageKind = "site_visit_reminder"
	KindWelcome               MessageKind = "welcome"
	KindAccountVerification   MessageKind = "account_verification"
	KindPasswordReset         MessageKind = "password_reset"
	KindCustom                MessageKind = "custom"
)

// TemplatedKinds lists every kind that is rendered from a catalog template.
var TemplatedKinds = []MessageKind{
	KindBookingConfirmation,
	KindBookingReminder,
	KindPaymentReminder,
	KindSiteVisitRequest,
	KindSiteVisitConfirmation,
	KindExpressInterest,
	KindUnitAvailable,
	KindSiteVisitReminder,
	KindWelcome,
	KindAccountVerification,
	KindPasswordReset,
}

func (k MessageKind) IsValid() bool {
	if k == KindCustom {
		return true
	}
	for _, known := range TemplatedKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Priority returns the queue priority used for this kind. One-time codes are
// time sensitive and jump ahead of marketing and reminder traffic.
func (k MessageKind) Priority() Priority {
	switch k {
	case KindAccountVerification, KindPasswordReset:
		return PriorityHigh
	case KindWelcome, KindExpressInterest:
		return PriorityLow
	}
	return PriorityNormal
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// Weight returns the priority weight for queue ordering (lower = higher priority)
func (p Priority) Weight() int64 {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityNormal:
		return 1000000
	case PriorityLow:
		return 2000000
	}
	return 1000000 // default to normal
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityNormal, PriorityLow:
		return true
	}
	return false
}

// DeliveryMethod names the transport a message went out on
type DeliveryMethod string

const (
	MethodChatBridge DeliveryMethod = "chat_bridge"
	MethodSMS        DeliveryMethod = "sms"
	MethodNone       DeliveryMethod = "none"
)

// EventData carries the display values for one notification, keyed by
// template variable name. It is owned by the caller and never mutated here.
type EventData map[string]any

// DeliveryAttempt is one transport's result for one message.
type DeliveryAttempt struct {
	Method    DeliveryMethod `json:"method"`
	Succeeded bool           `json:"succeeded"`
	Detail    string         `json:"error_detail,omitempty"`
}

// DeliveryOutcome is the result of a dispatch.
type DeliveryOutcome struct {
	Succeeded bool              `json:"succeeded"`
	Method    DeliveryMethod    `json:"method"`
	Attempts  []DeliveryAttempt `json:"attempts,omitempty"`
}

// FailedOutcome is the outcome when no transport delivered the message.
func FailedOutcome(attempts []DeliveryAttempt) DeliveryOutcome {
	return DeliveryOutcome{Succeeded: false, Method: MethodNone, Attempts: attempts}
}

// DispatchRequest is everything the dispatcher needs to deliver one message.
// Text is only read for KindCustom; Data is only read for templated kinds.
type DispatchRequest struct {
	Kind           MessageKind `json:"kind"`
	Phone          string      `json:"phone"`
	Data           EventData   `json:"data,omitempty"`
	Text           string      `json:"text,omitempty"`
	VacancyAlertID *int64      `json:"vacancy_alert_id,omitempty"`
	CorrelationID  string      `json:"correlation_id,omitempty"`
}

// NewDispatchRequest builds a templated request, rejecting unknown kinds.
func NewDispatchRequest(kind MessageKind, phone string, data EventData) (DispatchRequest, error) {
	if !kind.IsValid() {
		return DispatchRequest{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return DispatchRequest{Kind: kind, Phone: phone, Data: data}, nil
}

// NewCustomRequest builds a request that sends text verbatim.
func NewCustomRequest(phone, text string) DispatchRequest {
	return DispatchRequest{Kind: KindCustom, Phone: phone, Text: text}
}

// DispatchJob is a DispatchRequest waiting in the background queue.
type DispatchJob struct {
	ID          uuid.UUID       `json:"id"`
	Request     DispatchRequest `json:"request"`
	Priority    Priority        `json:"priority"`
	ScheduledAt *time.Time      `json:"scheduled_at,omitempty"`
	EnqueuedAt  time.Time       `json:"enqueued_at"`
}

func NewDispatchJob(req DispatchRequest) *DispatchJob {
	return &DispatchJob{
		ID:         uuid.New(),
		Request:    req,
		Priority:   req.Kind.Priority(),
		EnqueuedAt: time.Now().UTC(),
	}
}
