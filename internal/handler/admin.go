package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/victorsprings/notification-service/internal/domain"
)

const testMessage = "%s - Test Message\n\nThis is a test message from your admin panel. " +
	"If you received this, your communication settings are working correctly!"

// BridgeProbe reports chat-bridge health
type BridgeProbe interface {
	Status(ctx context.Context) (*domain.BridgeStatus, error)
}

// CustomSender delivers free text synchronously
type CustomSender interface {
	SendCustom(ctx context.Context, phone, text string) domain.DeliveryOutcome
}

// CommunicationSettings is the read-only view of the messaging configuration
type CommunicationSettings struct {
	BridgeURL          string `json:"whatsapp_bridge_url"`
	SMSAPIKey          string `json:"sms_api_key"`
	SMSConfigured      bool   `json:"sms_configured"`
	SMSSenderPhone     string `json:"sms_sender_phone"`
	DefaultCountryCode string `json:"default_country_code"`
	TestPhone          string `json:"test_phone"`
	SupportPhone       string `json:"support_phone"`
	WebsiteURL         string `json:"website_url"`
	CompanyName        string `json:"company_name"`
}

// AdminHandler serves the communication diagnostics used by the admin panel
type AdminHandler struct {
	bridge   BridgeProbe
	sender   CustomSender
	settings CommunicationSettings
	logger   *slog.Logger
	validate *validator.Validate
}

// NewAdminHandler creates a new AdminHandler. The SMS API key in settings is
// masked before it is ever served.
func NewAdminHandler(bridge BridgeProbe, sender CustomSender, settings CommunicationSettings, logger *slog.Logger) *AdminHandler {
	settings.SMSConfigured = settings.SMSAPIKey != ""
	settings.SMSAPIKey = maskSecret(settings.SMSAPIKey)

	return &AdminHandler{
		bridge:   bridge,
		sender:   sender,
		settings: settings,
		logger:   logger,
		validate: validator.New(),
	}
}

// RegisterRoutes registers admin routes
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/bridge-status", h.BridgeStatus)
	r.Post("/test-connection", h.TestConnection)
	r.Get("/settings", h.Settings)
}

func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}

// BridgeStatusResponse describes the chat bridge as seen from this service
type BridgeStatusResponse struct {
	Status            domain.BridgeState `json:"status"`
	ActiveConnections int                `json:"active_connections"`
	MappedMessages    int                `json:"mapped_messages"`
	Message           string             `json:"message,omitempty"`
}

// BridgeStatus reports chat-bridge health
// @Summary Chat bridge status
// @Description Probe the WhatsApp bridge: connected, running, error or disconnected
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=BridgeStatusResponse}
// @Router /api/v1/admin/bridge-status [get]
func (h *AdminHandler) BridgeStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.bridge.Status(r.Context())
	if err != nil {
		JSON(w, http.StatusOK, bridgeFailure(err))
		return
	}

	JSON(w, http.StatusOK, BridgeStatusResponse{
		Status:            status.State(),
		ActiveConnections: status.ActiveConnections,
		MappedMessages:    status.MappedMessages,
	})
}

// bridgeFailure maps a probe error: no HTTP response means disconnected, a
// bad response means error.
func bridgeFailure(err error) BridgeStatusResponse {
	var te domain.TransportError
	if errors.As(err, &te) && te.StatusCode == 0 {
		return BridgeStatusResponse{Status: domain.BridgeDisconnected, Message: te.Message}
	}
	return BridgeStatusResponse{Status: domain.BridgeError, Message: "Bridge not responding"}
}

// TestConnectionRequest names the phone to send a test message to
type TestConnectionRequest struct {
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=32" example:"0712345678"`
	Message string `json:"message,omitempty" validate:"omitempty,max=640"`
}

// TestConnection sends a test message synchronously
// @Summary Test connection
// @Description Send a test message through the transport chain and report the outcome
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TestConnectionRequest false "Target phone; defaults to the configured test phone"
// @Success 200 {object} Response{data=domain.DeliveryOutcome}
// @Failure 400 {object} Response
// @Failure 502 {object} Response
// @Router /api/v1/admin/test-connection [post]
func (h *AdminHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	var req TestConnectionRequest
	if r.ContentLength != 0 {
		if err := DecodeJSON(r, &req); err != nil {
			HandleError(w, err)
			return
		}
	}

	if err := h.validate.Struct(req); err != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	phone := req.Phone
	if phone == "" {
		phone = h.settings.TestPhone
	}
	if phone == "" {
		HandleError(w, domain.NewValidationError("phone", "Phone number required"))
		return
	}

	text := req.Message
	if text == "" {
		text = fmt.Sprintf(testMessage, h.settings.CompanyName)
	}

	outcome := h.sender.SendCustom(r.Context(), phone, text)
	if !outcome.Succeeded {
		h.logger.Warn("test message failed", "phone", phone, "attempts", len(outcome.Attempts))
		JSONError(w, http.StatusBadGateway, "DELIVERY_FAILED", "Failed to send test message", outcome.Attempts)
		return
	}

	JSON(w, http.StatusOK, outcome)
}

// Settings returns the messaging configuration with the API key masked
// @Summary Communication settings
// @Description Read the messaging configuration; the SMS API key is masked
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=CommunicationSettings}
// @Router /api/v1/admin/settings [get]
func (h *AdminHandler) Settings(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.settings)
}
