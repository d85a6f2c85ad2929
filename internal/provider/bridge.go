package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/victorsprings/notification-service/internal/config"
	"github.com/victorsprings/notification-service/internal/domain"
)

// ChatBridge implements domain.Transport using the WhatsApp relay service
type ChatBridge struct {
	client       *http.Client
	healthClient *http.Client
	baseURL      string
	normalizer   domain.PhoneNormalizer
	logger       *slog.Logger
}

type bridgeMessage struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// NewChatBridge creates a new ChatBridge
func NewChatBridge(cfg config.BridgeConfig, normalizer domain.PhoneNormalizer, logger *slog.Logger) *ChatBridge {
	return &ChatBridge{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		healthClient: &http.Client{
			Timeout: cfg.HealthTimeout,
		},
		baseURL:    cfg.URL,
		normalizer: normalizer,
		logger:     logger,
	}
}

func (b *ChatBridge) Method() domain.DeliveryMethod {
	return domain.MethodChatBridge
}

// Send posts the message to the bridge. Only a 200 response counts as sent.
func (b *ChatBridge) Send(ctx context.Context, phone, text string) error {
	to := b.normalizer.Normalize(phone)

	body, err := json.Marshal(bridgeMessage{Phone: to, Message: text})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/send-whatsapp", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		b.logger.Warn("chat bridge request failed", "phone", to, "error", err)
		return domain.NewTransportError(domain.MethodChatBridge, 0, fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		b.logger.Warn("chat bridge rejected message",
			"phone", to,
			"status", resp.StatusCode,
			"body", string(respBody),
		)
		return domain.NewTransportError(domain.MethodChatBridge, resp.StatusCode, string(respBody))
	}

	b.logger.Debug("chat bridge message sent", "phone", to)
	return nil
}

// Status probes the bridge health endpoint
func (b *ChatBridge) Status(ctx context.Context) (*domain.BridgeStatus, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := b.healthClient.Do(httpReq)
	if err != nil {
		return nil, domain.NewTransportError(domain.MethodChatBridge, 0, fmt.Sprintf("health probe failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewTransportError(domain.MethodChatBridge, resp.StatusCode, "health probe returned non-200")
	}

	var status domain.BridgeStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode bridge health: %w", err)
	}
	return &status, nil
}
