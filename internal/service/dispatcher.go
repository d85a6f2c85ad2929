package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/victorsprings/notification-service/internal/domain"
)

// Renderer produces message text for a templated kind
type Renderer interface {
	Render(kind domain.MessageKind, data domain.EventData) (string, error)
}

// DispatchResult is handed to outcome hooks after every dispatch
type DispatchResult struct {
	Request  domain.DispatchRequest
	Text     string
	Outcome  domain.DeliveryOutcome
	Duration time.Duration
}

// OutcomeHook observes finished dispatches. Hooks must not block for long;
// they run on the dispatching goroutine.
type OutcomeHook func(ctx context.Context, result DispatchResult)

// Dispatcher renders a message and hands it to each transport in order
// until one accepts it.
type Dispatcher struct {
	renderer   Renderer
	transports []domain.Transport
	logger     *slog.Logger
	hooks      []OutcomeHook
}

// NewDispatcher creates a Dispatcher. Transports are tried in the order given.
func NewDispatcher(renderer Renderer, logger *slog.Logger, transports ...domain.Transport) *Dispatcher {
	return &Dispatcher{
		renderer:   renderer,
		transports: transports,
		logger:     logger,
	}
}

// AddOutcomeHook registers fn to run after each dispatch. Not safe to call
// once dispatching has started.
func (d *Dispatcher) AddOutcomeHook(fn OutcomeHook) {
	d.hooks = append(d.hooks, fn)
}

// Dispatch delivers one message. Transport failures never produce an error;
// they are reported in the outcome. The error result is reserved for requests
// that cannot be rendered, and is returned before any transport is tried.
func (d *Dispatcher) Dispatch(ctx context.Context, req domain.DispatchRequest) (domain.DeliveryOutcome, error) {
	text, err := d.render(req)
	if err != nil {
		return domain.FailedOutcome(nil), err
	}

	logger := d.logger.With(
		"kind", req.Kind,
		"phone", req.Phone,
	)
	if req.CorrelationID != "" {
		logger = logger.With("correlation_id", req.CorrelationID)
	}

	start := time.Now()
	attempts := make([]domain.DeliveryAttempt, 0, len(d.transports))
	outcome := domain.FailedOutcome(nil)

	for _, t := range d.transports {
		attempt := domain.DeliveryAttempt{Method: t.Method()}

		if sendErr := t.Send(ctx, req.Phone, text); sendErr != nil {
			attempt.Detail = sendErr.Error()
			attempts = append(attempts, attempt)
			logger.Info("transport failed, trying next",
				"method", t.Method(),
				"error", sendErr,
				"not_configured", errors.Is(sendErr, domain.ErrNotConfigured),
			)
			continue
		}

		attempt.Succeeded = true
		attempts = append(attempts, attempt)
		outcome = domain.DeliveryOutcome{Succeeded: true, Method: t.Method()}
		break
	}
	outcome.Attempts = attempts

	if outcome.Succeeded {
		logger.Info("notification delivered", "method", outcome.Method)
	} else {
		logger.Warn("notification not delivered by any transport", "attempts", len(attempts))
	}

	d.runHooks(ctx, DispatchResult{
		Request:  req,
		Text:     text,
		Outcome:  outcome,
		Duration: time.Since(start),
	})

	return outcome, nil
}

// Preview renders a request without sending it
func (d *Dispatcher) Preview(req domain.DispatchRequest) (string, error) {
	return d.render(req)
}

func (d *Dispatcher) render(req domain.DispatchRequest) (string, error) {
	if !req.Kind.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownKind, req.Kind)
	}
	if req.Kind == domain.KindCustom {
		return req.Text, nil
	}
	return d.renderer.Render(req.Kind, req.Data)
}

func (d *Dispatcher) runHooks(ctx context.Context, result DispatchResult) {
	for _, hook := range d.hooks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					d.logger.Error("outcome hook panicked", "panic", r, "kind", result.Request.Kind)
				}
			}()
			hook(ctx, result)
		}()
	}
}
