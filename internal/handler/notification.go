package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/victorsprings/notification-service/internal/domain"
	"github.com/victorsprings/notification-service/internal/middleware"
	"github.com/victorsprings/notification-service/internal/service"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	service  *service.NotificationService
	validate *validator.Validate
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public notification routes
func (h *NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Post("/custom", h.CreateCustom)
}

// RegisterAdminRoutes registers the notification log routes
func (h *NotificationHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/logs", h.ListLogs)
	r.Get("/logs/{id}", h.GetLog)
}

// CreateNotificationRequest represents a request to send a templated notification
// @Description Request to send a templated notification
type CreateNotificationRequest struct {
	Kind        domain.MessageKind `json:"kind" validate:"required" example:"booking_confirmation"`
	Phone       string             `json:"phone" validate:"required,max=32" example:"0712345678"`
	Data        domain.EventData   `json:"data,omitempty"`
	ScheduledAt *time.Time         `json:"scheduled_at,omitempty"`
}

// CreateCustomRequest represents a request to send free text
type CreateCustomRequest struct {
	Phone       string     `json:"phone" validate:"required,max=32" example:"+254712345678"`
	Message     string     `json:"message" validate:"required" example:"Water maintenance on Friday"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// QueuedResponse is returned when a notification was accepted for delivery
type QueuedResponse struct {
	Status      string             `json:"status"`
	JobID       uuid.UUID          `json:"job_id"`
	Kind        domain.MessageKind `json:"kind"`
	Priority    domain.Priority    `json:"priority"`
	ScheduledAt *time.Time         `json:"scheduled_at,omitempty"`
}

func queued(job *domain.DispatchJob) QueuedResponse {
	return QueuedResponse{
		Status:      "queued",
		JobID:       job.ID,
		Kind:        job.Request.Kind,
		Priority:    job.Priority,
		ScheduledAt: job.ScheduledAt,
	}
}

// Create queues a templated notification
// @Summary Send notification
// @Description Queue a templated notification for background delivery
// @Tags notifications
// @Accept json
// @Produce json
// @Param notification body CreateNotificationRequest true "Notification request"
// @Success 202 {object} Response{data=QueuedResponse}
// @Failure 400 {object} Response
// @Failure 503 {object} Response
// @Router /api/v1/notifications [post]
func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateNotificationRequest
	if err := DecodeJSON(r, &req); err != nil {
		HandleError(w, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	job, err := h.service.Queue(r.Context(), service.QueueRequest{
		Kind:          req.Kind,
		Phone:         req.Phone,
		Data:          req.Data,
		ScheduledAt:   req.ScheduledAt,
		CorrelationID: middleware.GetCorrelationID(r.Context()),
	})
	if err != nil {
		HandleError(w, err)
		return
	}

	JSON(w, http.StatusAccepted, queued(job))
}

// CreateCustom queues a free-text notification
// @Summary Send custom message
// @Description Queue a free-text message for background delivery
// @Tags notifications
// @Accept json
// @Produce json
// @Param notification body CreateCustomRequest true "Custom message request"
// @Success 202 {object} Response{data=QueuedResponse}
// @Failure 400 {object} Response
// @Failure 503 {object} Response
// @Router /api/v1/notifications/custom [post]
func (h *NotificationHandler) CreateCustom(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomRequest
	if err := DecodeJSON(r, &req); err != nil {
		HandleError(w, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	job, err := h.service.Queue(r.Context(), service.QueueRequest{
		Kind:          domain.KindCustom,
		Phone:         req.Phone,
		Text:          req.Message,
		ScheduledAt:   req.ScheduledAt,
		CorrelationID: middleware.GetCorrelationID(r.Context()),
	})
	if err != nil {
		HandleError(w, err)
		return
	}

	JSON(w, http.StatusAccepted, queued(job))
}

// GetLog retrieves a notification log entry by ID
// @Summary Get notification log entry
// @Description Get a delivery log entry by its ID
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Log ID"
// @Success 200 {object} Response{data=domain.NotificationLog}
// @Failure 404 {object} Response
// @Failure 500 {object} Response
// @Router /api/v1/notifications/logs/{id} [get]
func (h *NotificationHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "INVALID_ID", "Invalid log ID", nil)
		return
	}

	entry, err := h.service.GetLog(r.Context(), id)
	if err != nil {
		HandleError(w, err)
		return
	}

	JSON(w, http.StatusOK, entry)
}

// ListLogs lists notification log entries with filters
// @Summary List notification log
// @Description List delivery log entries with optional filters and pagination
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param message_type query string false "Filter by message kind"
// @Param delivery_method query string false "Filter by delivery method"
// @Param success query bool false "Filter by success"
// @Param vacancy_alert_id query int false "Filter by vacancy alert"
// @Param start_date query string false "Filter by start date (RFC3339)"
// @Param end_date query string false "Filter by end date (RFC3339)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} Response{data=domain.NotificationLogListResult}
// @Failure 400 {object} Response
// @Failure 500 {object} Response
// @Router /api/v1/notifications/logs [get]
func (h *NotificationHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	filter := domain.NotificationLogFilter{
		Page:     1,
		PageSize: 20,
	}
	q := r.URL.Query()

	if kind := q.Get("message_type"); kind != "" {
		k := domain.MessageKind(kind)
		if !k.IsValid() {
			JSONError(w, http.StatusBadRequest, "UNKNOWN_KIND", "Invalid message type", nil)
			return
		}
		filter.MessageType = &k
	}

	if method := q.Get("delivery_method"); method != "" {
		m := domain.DeliveryMethod(method)
		switch m {
		case domain.MethodChatBridge, domain.MethodSMS, domain.MethodNone:
		default:
			JSONError(w, http.StatusBadRequest, "INVALID_DELIVERY_METHOD", "Invalid delivery method", nil)
			return
		}
		filter.DeliveryMethod = &m
	}

	if successStr := q.Get("success"); successStr != "" {
		success, err := strconv.ParseBool(successStr)
		if err != nil {
			JSONError(w, http.StatusBadRequest, "INVALID_SUCCESS", "success must be true or false", nil)
			return
		}
		filter.Success = &success
	}

	if alertStr := q.Get("vacancy_alert_id"); alertStr != "" {
		alertID, err := strconv.ParseInt(alertStr, 10, 64)
		if err != nil {
			JSONError(w, http.StatusBadRequest, "INVALID_VACANCY_ALERT_ID", "Invalid vacancy alert ID", nil)
			return
		}
		filter.VacancyAlertID = &alertID
	}

	if startDateStr := q.Get("start_date"); startDateStr != "" {
		startDate, err := time.Parse(time.RFC3339, startDateStr)
		if err != nil {
			JSONError(w, http.StatusBadRequest, "INVALID_START_DATE", "Invalid start date format (use RFC3339)", nil)
			return
		}
		filter.StartDate = &startDate
	}

	if endDateStr := q.Get("end_date"); endDateStr != "" {
		endDate, err := time.Parse(time.RFC3339, endDateStr)
		if err != nil {
			JSONError(w, http.StatusBadRequest, "INVALID_END_DATE", "Invalid end date format (use RFC3339)", nil)
			return
		}
		filter.EndDate = &endDate
	}

	if pageStr := q.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			JSONError(w, http.StatusBadRequest, "INVALID_PAGE", "Invalid page number", nil)
			return
		}
		filter.Page = page
	}

	if pageSizeStr := q.Get("page_size"); pageSizeStr != "" {
		pageSize, err := strconv.Atoi(pageSizeStr)
		if err != nil || pageSize < 1 || pageSize > 100 {
			JSONError(w, http.StatusBadRequest, "INVALID_PAGE_SIZE", "Page size must be between 1 and 100", nil)
			return
		}
		filter.PageSize = pageSize
	}

	result, err := h.service.ListLogs(r.Context(), filter)
	if err != nil {
		HandleError(w, err)
		return
	}

	JSON(w, http.StatusOK, result)
}

// UnitAvailableRequest announces a freed unit to everyone waiting for its type
type UnitAvailableRequest struct {
	UnitTypeID   int64   `json:"unit_type_id" validate:"required,gt=0" example:"3"`
	PropertyName string  `json:"property_name" validate:"required" example:"Victor Springs Apartments"`
	UnitName     string  `json:"unit_name" validate:"required" example:"B4"`
	Price        float64 `json:"price" validate:"gte=0" example:"45000"`
}

// UnitAvailable queues a unit_available notification for every active vacancy alert
// @Summary Notify waitlist
// @Description Queue a unit-available message for every active vacancy alert on a unit type
// @Tags vacancy-alerts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UnitAvailableRequest true "Freed unit"
// @Success 202 {object} Response{data=service.WaitlistResult}
// @Failure 400 {object} Response
// @Failure 503 {object} Response
// @Router /api/v1/vacancy-alerts/unit-available [post]
func (h *NotificationHandler) UnitAvailable(w http.ResponseWriter, r *http.Request) {
	var req UnitAvailableRequest
	if err := DecodeJSON(r, &req); err != nil {
		HandleError(w, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	result, err := h.service.NotifyWaitlist(r.Context(), service.UnitAvailableRequest{
		UnitTypeID:    req.UnitTypeID,
		PropertyName:  req.PropertyName,
		UnitName:      req.UnitName,
		Price:         req.Price,
		CorrelationID: middleware.GetCorrelationID(r.Context()),
	})
	if err != nil {
		HandleError(w, err)
		return
	}

	JSON(w, http.StatusAccepted, result)
}
