package domain

import (
	"context"
	"time"
)

// VacancyAlert is a waitlist entry for a unit type. Users and guests both
// register alerts, so UserID and GuestID are each optional.
type VacancyAlert struct {
	ID              int64      `json:"id"`
	UserID          *int64     `json:"user_id,omitempty"`
	GuestID         *string    `json:"guest_id,omitempty"`
	UnitTypeID      int64      `json:"unit_type_id"`
	ContactName     string     `json:"contact_name"`
	ContactEmail    string     `json:"contact_email"`
	ContactPhone    string     `json:"contact_phone"`
	SpecialRequests string     `json:"special_requests,omitempty"`
	ValidUntil      *time.Time `json:"valid_until,omitempty"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Expired reports whether the alert's validity window has passed
func (a *VacancyAlert) Expired(now time.Time) bool {
	return a.ValidUntil != nil && a.ValidUntil.Before(now)
}

type VacancyAlertRepository interface {
	// ListActiveByUnitType returns active, unexpired alerts for a unit type
	ListActiveByUnitType(ctx context.Context, unitTypeID int64, now time.Time) ([]*VacancyAlert, error)
}
