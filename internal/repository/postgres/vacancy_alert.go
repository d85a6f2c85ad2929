package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/victorsprings/notification-service/internal/domain"
)

// VacancyAlertRepository reads the waitlist table owned by the rental backend
type VacancyAlertRepository struct {
	db *DB
}

// NewVacancyAlertRepository creates a new VacancyAlertRepository
func NewVacancyAlertRepository(db *DB) *VacancyAlertRepository {
	return &VacancyAlertRepository{db: db}
}

// ListActiveByUnitType returns active alerts for unitTypeID whose validity
// runs through now and that carry a contact phone.
func (r *VacancyAlertRepository) ListActiveByUnitType(ctx context.Context, unitTypeID int64, now time.Time) ([]*domain.VacancyAlert, error) {
	query := `
		SELECT id, user_id, guest_id, unit_type_id,
			COALESCE(contact_name, ''), COALESCE(contact_email, ''), contact_phone,
			COALESCE(special_requests, ''), valid_until, is_active, created_at
		FROM vacancy_alerts
		WHERE unit_type_id = $1
			AND is_active
			AND valid_until >= $2::date
			AND COALESCE(contact_phone, '') <> ''
		ORDER BY created_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, unitTypeID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query vacancy alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]*domain.VacancyAlert, 0)
	for rows.Next() {
		a := &domain.VacancyAlert{}
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.GuestID, &a.UnitTypeID,
			&a.ContactName, &a.ContactEmail, &a.ContactPhone,
			&a.SpecialRequests, &a.ValidUntil, &a.IsActive, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vacancy alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vacancy alerts: %w", err)
	}

	return alerts, nil
}
