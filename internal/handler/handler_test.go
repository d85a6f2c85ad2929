package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/victorsprings/notification-service/internal/catalog"
	"github.com/victorsprings/notification-service/internal/domain"
	"github.com/victorsprings/notification-service/internal/middleware"
	"github.com/victorsprings/notification-service/internal/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *Error          `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unknown kind", fmt.Errorf("%w: %q", domain.ErrUnknownKind, "x"), http.StatusBadRequest, "UNKNOWN_KIND"},
		{"template not found", domain.ErrTemplateNotFound, http.StatusNotFound, "TEMPLATE_NOT_FOUND"},
		{"queue unavailable", fmt.Errorf("%w: %w", domain.ErrQueueUnavailable, errors.New("redis")), http.StatusServiceUnavailable, "QUEUE_UNAVAILABLE"},
		{"rate limited", domain.ErrRateLimitExceeded, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"validation", domain.NewValidationError("phone", "phone is required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"validation list", domain.ValidationErrors{Errors: []domain.ValidationError{{Field: "subject"}}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			env := decode(t, rec)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantErr, env.Error.Code)
		})
	}
}

func newNotificationRouter(queue *MockQueue, logs *MockLogRepository, alerts *MockAlertRepository) http.Handler {
	svc := service.NewNotificationService(queue, logs, alerts, testLogger())
	h := NewNotificationHandler(svc)

	r := chi.NewRouter()
	r.Use(middleware.Correlation)
	r.Route("/notifications", func(r chi.Router) {
		h.RegisterRoutes(r)
		h.RegisterAdminRoutes(r)
	})
	r.Post("/vacancy-alerts/unit-available", h.UnitAvailable)
	return r
}

func TestNotificationHandler_Create(t *testing.T) {
	t.Run("queues templated notification", func(t *testing.T) {
		queue := new(MockQueue)
		var job *domain.DispatchJob
		queue.On("Enqueue", mock.Anything, mock.AnythingOfType("*domain.DispatchJob")).
			Run(func(args mock.Arguments) { job = args.Get(1).(*domain.DispatchJob) }).
			Return(nil).Once()

		router := newNotificationRouter(queue, new(MockLogRepository), new(MockAlertRepository))
		rec := do(router, http.MethodPost, "/notifications",
			`{"kind":"password_reset","phone":"0712345678","data":{"code":"999111"}}`)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		var body QueuedResponse
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &body))
		assert.Equal(t, "queued", body.Status)
		assert.Equal(t, domain.PriorityHigh, body.Priority)

		require.NotNil(t, job)
		assert.Equal(t, job.ID, body.JobID)
		assert.Equal(t, "999111", job.Request.Data["code"])
		assert.NotEmpty(t, job.Request.CorrelationID)
	})

	t.Run("unknown kind", func(t *testing.T) {
		router := newNotificationRouter(new(MockQueue), new(MockLogRepository), new(MockAlertRepository))
		rec := do(router, http.MethodPost, "/notifications", `{"kind":"fax","phone":"0712345678"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "UNKNOWN_KIND", decode(t, rec).Error.Code)
	})

	t.Run("missing phone", func(t *testing.T) {
		router := newNotificationRouter(new(MockQueue), new(MockLogRepository), new(MockAlertRepository))
		rec := do(router, http.MethodPost, "/notifications", `{"kind":"welcome"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decode(t, rec).Error.Code)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		router := newNotificationRouter(new(MockQueue), new(MockLogRepository), new(MockAlertRepository))
		rec := do(router, http.MethodPost, "/notifications", `{"kind":"welcome","phone":"07","channel":"sms"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("queue down", func(t *testing.T) {
		queue := new(MockQueue)
		queue.On("Enqueue", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

		router := newNotificationRouter(queue, new(MockLogRepository), new(MockAlertRepository))
		rec := do(router, http.MethodPost, "/notifications", `{"kind":"welcome","phone":"0712345678"}`)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestNotificationHandler_CreateCustom(t *testing.T) {
	queue := new(MockQueue)
	queue.On("Enqueue", mock.Anything, mock.MatchedBy(func(j *domain.DispatchJob) bool {
		return j.Request.Kind == domain.KindCustom && j.Request.Text == "Water maintenance on Friday"
	})).Return(nil).Once()

	router := newNotificationRouter(queue, new(MockLogRepository), new(MockAlertRepository))

	rec := do(router, http.MethodPost, "/notifications/custom",
		`{"phone":"+254712345678","message":"Water maintenance on Friday"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = do(router, http.MethodPost, "/notifications/custom", `{"phone":"+254712345678"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	queue.AssertExpectations(t)
}

func TestNotificationHandler_Logs(t *testing.T) {
	t.Run("list with filters", func(t *testing.T) {
		logs := new(MockLogRepository)
		logs.On("List", mock.Anything, mock.MatchedBy(func(f domain.NotificationLogFilter) bool {
			return f.MessageType != nil && *f.MessageType == domain.KindUnitAvailable &&
				f.Success != nil && !*f.Success &&
				f.VacancyAlertID != nil && *f.VacancyAlertID == 5 &&
				f.Page == 2 && f.PageSize == 10
		})).Return(&domain.NotificationLogListResult{Total: 1, Page: 2, PageSize: 10}, nil).Once()

		router := newNotificationRouter(new(MockQueue), logs, new(MockAlertRepository))
		rec := do(router, http.MethodGet,
			"/notifications/logs?message_type=unit_available&success=false&vacancy_alert_id=5&page=2&page_size=10", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		logs.AssertExpectations(t)
	})

	t.Run("invalid filters", func(t *testing.T) {
		router := newNotificationRouter(new(MockQueue), new(MockLogRepository), new(MockAlertRepository))

		for _, query := range []string{
			"message_type=fax",
			"delivery_method=pigeon",
			"success=maybe",
			"page=0",
			"page_size=500",
			"start_date=yesterday",
		} {
			rec := do(router, http.MethodGet, "/notifications/logs?"+query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, query)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		logs := new(MockLogRepository)
		id := uuid.New()
		logs.On("GetByID", mock.Anything, id).Return(&domain.NotificationLog{ID: id}, nil).Once()
		missing := uuid.New()
		logs.On("GetByID", mock.Anything, missing).Return(nil, domain.ErrNotFound).Once()

		router := newNotificationRouter(new(MockQueue), logs, new(MockAlertRepository))

		assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/notifications/logs/"+id.String(), "").Code)
		assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/notifications/logs/"+missing.String(), "").Code)
		assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/notifications/logs/not-a-uuid", "").Code)
	})
}

func TestNotificationHandler_UnitAvailable(t *testing.T) {
	queue := new(MockQueue)
	alerts := new(MockAlertRepository)
	alerts.On("ListActiveByUnitType", mock.Anything, int64(3), mock.Anything).Return([]*domain.VacancyAlert{
		{ID: 1, ContactName: "Jane", ContactPhone: "0711111111"},
	}, nil).Once()
	queue.On("Enqueue", mock.Anything, mock.Anything).Return(nil).Once()

	router := newNotificationRouter(queue, new(MockLogRepository), alerts)

	rec := do(router, http.MethodPost, "/vacancy-alerts/unit-available",
		`{"unit_type_id":3,"property_name":"Victor Springs A","unit_name":"B4","price":45000}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	var result service.WaitlistResult
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &result))
	assert.Equal(t, 1, result.Queued)

	rec = do(router, http.MethodPost, "/vacancy-alerts/unit-available", `{"unit_type_id":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func newTemplateRouter() http.Handler {
	cat := catalog.New(catalog.Settings{SupportPhone: "+254 700 000 000", WebsiteURL: "victor-springs.com", CompanyName: "Victor Springs"})
	h := NewTemplateHandler(service.NewTemplateService(cat, testLogger()))

	r := chi.NewRouter()
	r.Route("/templates", func(r chi.Router) {
		h.RegisterRoutes(r)
		h.RegisterAdminRoutes(r)
	})
	return r
}

func TestTemplateHandler(t *testing.T) {
	router := newTemplateRouter()

	t.Run("list", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/templates", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		var templates []domain.Template
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &templates))
		assert.Len(t, templates, len(domain.TemplatedKinds))
	})

	t.Run("get", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/templates/welcome", "").Code)
		assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/templates/fax", "").Code)
		assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/templates/custom", "").Code)
	})

	t.Run("render", func(t *testing.T) {
		rec := do(router, http.MethodPost, "/templates/booking_confirmation/render",
			`{"data":{"venue_name":"Acme Hall","total_cost":50000}}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		var preview service.Preview
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &preview))
		assert.Contains(t, preview.Text, "Acme Hall")
		assert.Contains(t, preview.Text, "50,000")
		assert.Equal(t, []string{"event_date"}, preview.Missing)
	})

	t.Run("update validates only", func(t *testing.T) {
		rec := do(router, http.MethodPut, "/templates/welcome", `{"subject":"Hi","message":"Hello {first_name}"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"persisted":false`)

		rec = do(router, http.MethodPut, "/templates/welcome", `{"subject":"Hi"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Missing required field: message")
	})
}

func TestAdminHandler_BridgeStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     *domain.BridgeStatus
		err        error
		wantStatus domain.BridgeState
	}{
		{"connected", &domain.BridgeStatus{ActiveConnections: 2, MappedMessages: 7}, nil, domain.BridgeConnected},
		{"running", &domain.BridgeStatus{}, nil, domain.BridgeRunning},
		{"error", nil, domain.NewTransportError(domain.MethodChatBridge, 500, "health probe returned non-200"), domain.BridgeError},
		{"disconnected", nil, domain.NewTransportError(domain.MethodChatBridge, 0, "connection refused"), domain.BridgeDisconnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := new(MockBridgeProbe)
			probe.On("Status", mock.Anything).Return(tt.status, tt.err).Once()
			h := NewAdminHandler(probe, new(MockSender), CommunicationSettings{}, testLogger())

			rec := do(http.HandlerFunc(h.BridgeStatus), http.MethodGet, "/", "")
			assert.Equal(t, http.StatusOK, rec.Code)

			var body BridgeStatusResponse
			require.NoError(t, json.Unmarshal(decode(t, rec).Data, &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			if tt.status != nil {
				assert.Equal(t, tt.status.MappedMessages, body.MappedMessages)
			}
		})
	}
}

func TestAdminHandler_TestConnection(t *testing.T) {
	settings := CommunicationSettings{TestPhone: "0799999999", CompanyName: "Victor Springs"}

	t.Run("defaults to test phone", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("SendCustom", mock.Anything, "0799999999", mock.MatchedBy(func(text string) bool {
			return strings.HasPrefix(text, "Victor Springs - Test Message")
		})).Return(domain.DeliveryOutcome{Succeeded: true, Method: domain.MethodChatBridge}).Once()

		h := NewAdminHandler(new(MockBridgeProbe), sender, settings, testLogger())
		rec := do(http.HandlerFunc(h.TestConnection), http.MethodPost, "/", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		sender.AssertExpectations(t)
	})

	t.Run("explicit phone", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("SendCustom", mock.Anything, "0712345678", mock.Anything).
			Return(domain.DeliveryOutcome{Succeeded: true, Method: domain.MethodSMS}).Once()

		h := NewAdminHandler(new(MockBridgeProbe), sender, settings, testLogger())
		rec := do(http.HandlerFunc(h.TestConnection), http.MethodPost, "/", `{"phone":"0712345678"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		sender.AssertExpectations(t)
	})

	t.Run("delivery failure", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("SendCustom", mock.Anything, mock.Anything, mock.Anything).
			Return(domain.FailedOutcome([]domain.DeliveryAttempt{{Method: domain.MethodChatBridge, Detail: "down"}})).Once()

		h := NewAdminHandler(new(MockBridgeProbe), sender, settings, testLogger())
		rec := do(http.HandlerFunc(h.TestConnection), http.MethodPost, "/", "")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "DELIVERY_FAILED", decode(t, rec).Error.Code)
	})

	t.Run("no phone anywhere", func(t *testing.T) {
		h := NewAdminHandler(new(MockBridgeProbe), new(MockSender), CommunicationSettings{}, testLogger())
		rec := do(http.HandlerFunc(h.TestConnection), http.MethodPost, "/", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminHandler_SettingsMasksKey(t *testing.T) {
	h := NewAdminHandler(new(MockBridgeProbe), new(MockSender), CommunicationSettings{
		SMSAPIKey:      "sk_live_abcdef1234",
		SMSSenderPhone: "+254754096684",
	}, testLogger())

	rec := do(http.HandlerFunc(h.Settings), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "sk_live_abcdef1234")

	var body CommunicationSettings
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &body))
	assert.Equal(t, "**************1234", body.SMSAPIKey)
	assert.True(t, body.SMSConfigured)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", maskSecret(""))
	assert.Equal(t, "***", maskSecret("abc"))
	assert.Equal(t, "**cdef", maskSecret("abcdef"))
}

func TestHealthHandler(t *testing.T) {
	t.Run("all healthy", func(t *testing.T) {
		h := NewHealthHandler()
		h.AddChecker("postgres", HealthCheckerFunc(func(context.Context) error { return nil }))

		rec := do(http.HandlerFunc(h.Health), http.MethodGet, "/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("one unhealthy", func(t *testing.T) {
		h := NewHealthHandler()
		h.AddChecker("postgres", HealthCheckerFunc(func(context.Context) error { return nil }))
		h.AddChecker("redis", HealthCheckerFunc(func(context.Context) error { return errors.New("down") }))

		rec := do(http.HandlerFunc(h.Health), http.MethodGet, "/", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var status HealthStatus
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &status))
		assert.Equal(t, "unhealthy", status.Components["redis"].Status)
		assert.Equal(t, "healthy", status.Components["postgres"].Status)

		rec = do(http.HandlerFunc(h.Readiness), http.MethodGet, "/", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestDecodeJSON_EmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(nil))
	var v struct{}

	var ve domain.ValidationError
	assert.ErrorAs(t, DecodeJSON(req, &v), &ve)
}
