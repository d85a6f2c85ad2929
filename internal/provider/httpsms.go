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

// SMSGateway implements domain.Transport using the httpSMS API
type SMSGateway struct {
	client      *http.Client
	url         string
	apiKey      string
	senderPhone string
	normalizer  domain.PhoneNormalizer
	logger      *slog.Logger
}

type smsMessage struct {
	Content string `json:"content"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// NewSMSGateway creates a new SMSGateway
func NewSMSGateway(cfg config.SMSConfig, normalizer domain.PhoneNormalizer, logger *slog.Logger) *SMSGateway {
	return &SMSGateway{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		url:         cfg.URL,
		apiKey:      cfg.APIKey,
		senderPhone: cfg.SenderPhone,
		normalizer:  normalizer,
		logger:      logger,
	}
}

func (g *SMSGateway) Method() domain.DeliveryMethod {
	return domain.MethodSMS
}

// Configured reports whether an API key is set
func (g *SMSGateway) Configured() bool {
	return g.apiKey != ""
}

// Send posts the message to the gateway. Without an API key it fails
// immediately and makes no request.
func (g *SMSGateway) Send(ctx context.Context, phone, text string) error {
	if !g.Configured() {
		g.logger.Warn("sms gateway has no api key, skipping")
		return fmt.Errorf("sms: %w", domain.ErrNotConfigured)
	}

	to := g.normalizer.Normalize(phone)

	body, err := json.Marshal(smsMessage{Content: text, From: g.senderPhone, To: to})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("x-api-key", g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		g.logger.Warn("sms gateway request failed", "phone", to, "error", err)
		return domain.NewTransportError(domain.MethodSMS, 0, fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		g.logger.Warn("sms gateway rejected message",
			"phone", to,
			"status", resp.StatusCode,
			"body", string(respBody),
		)
		return domain.NewTransportError(domain.MethodSMS, resp.StatusCode, string(respBody))
	}

	g.logger.Debug("sms sent", "phone", to)
	return nil
}
