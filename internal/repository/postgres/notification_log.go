package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/victorsprings/notification-service/internal/domain"
)

const logColumns = `id, vacancy_alert_id, message_type, message_content, recipient_phone,
	delivery_method, sent_at, success, COALESCE(correlation_id, '')`

// NotificationLogRepository implements domain.NotificationLogRepository using PostgreSQL
type NotificationLogRepository struct {
	db *DB
}

// NewNotificationLogRepository creates a new NotificationLogRepository
func NewNotificationLogRepository(db *DB) *NotificationLogRepository {
	return &NotificationLogRepository{db: db}
}

// Create inserts a log entry
func (r *NotificationLogRepository) Create(ctx context.Context, l *domain.NotificationLog) error {
	query := `
		INSERT INTO notification_logs (
			id, vacancy_alert_id, message_type, message_content, recipient_phone,
			delivery_method, sent_at, success, correlation_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''))
	`

	_, err := r.db.Pool.Exec(ctx, query,
		l.ID, l.VacancyAlertID, l.MessageType, l.MessageContent, l.RecipientPhone,
		l.DeliveryMethod, l.SentAt, l.Success, l.CorrelationID,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification log: %w", err)
	}
	return nil
}

// GetByID retrieves a log entry by ID
func (r *NotificationLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.NotificationLog, error) {
	query := `SELECT ` + logColumns + ` FROM notification_logs WHERE id = $1`

	l, err := scanLog(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan notification log: %w", err)
	}
	return l, nil
}

// List lists log entries with filters and pagination, newest first
func (r *NotificationLogRepository) List(ctx context.Context, filter domain.NotificationLogFilter) (*domain.NotificationLogListResult, error) {
	where, args := logWhere(filter)

	countQuery := "SELECT COUNT(*) FROM notification_logs WHERE " + where
	var total int64
	if err := r.db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count notification logs: %w", err)
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`
		SELECT %s
		FROM notification_logs
		WHERE %s
		ORDER BY sent_at DESC
		LIMIT $%d OFFSET $%d
	`, logColumns, where, len(args)+1, len(args)+2)

	rows, err := r.db.Pool.Query(ctx, query, append(args, pageSize, offset)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notification logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*domain.NotificationLog, 0)
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification logs: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &domain.NotificationLogListResult{
		Logs:       logs,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func logWhere(filter domain.NotificationLogFilter) (string, []any) {
	conditions := []string{"1=1"}
	args := []any{}

	add := func(cond string, v any) {
		args = append(args, v)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.MessageType != nil {
		add("message_type = $%d", *filter.MessageType)
	}
	if filter.DeliveryMethod != nil {
		add("delivery_method = $%d", *filter.DeliveryMethod)
	}
	if filter.Success != nil {
		add("success = $%d", *filter.Success)
	}
	if filter.VacancyAlertID != nil {
		add("vacancy_alert_id = $%d", *filter.VacancyAlertID)
	}
	if filter.StartDate != nil {
		add("sent_at >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("sent_at <= $%d", *filter.EndDate)
	}

	return strings.Join(conditions, " AND "), args
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func scanLog(row pgx.Row) (*domain.NotificationLog, error) {
	l := &domain.NotificationLog{}
	err := row.Scan(
		&l.ID, &l.VacancyAlertID, &l.MessageType, &l.MessageContent, &l.RecipientPhone,
		&l.DeliveryMethod, &l.SentAt, &l.Success, &l.CorrelationID,
	)
	if err != nil {
		return nil, err
	}
	return l, nil
}
