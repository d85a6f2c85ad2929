package service

import (
	"context"
	"fmt"

	"github.com/victorsprings/notification-service/internal/domain"
)

// Send dispatches a typed business event. A render failure here means the
// event type and the catalog disagree, which is a wiring bug, so it panics.
func (d *Dispatcher) Send(ctx context.Context, phone string, event domain.Event) domain.DeliveryOutcome {
	req, err := domain.NewDispatchRequest(event.Kind(), phone, event.Data())
	if err != nil {
		panic(fmt.Sprintf("dispatcher: %v", err))
	}
	return d.mustDispatch(ctx, req)
}

func (d *Dispatcher) SendBookingConfirmation(ctx context.Context, phone string, e domain.BookingConfirmation) domain.DeliveryOutcome {
	return d.Send(ctx, phone, e)
}

func (d *Dispatcher) SendBookingReminder(ctx context.Context, phone string, e domain.BookingReminder) domain.DeliveryOutcome {
	return d.Send(ctx, phone, e)
}

func (d *Dispatcher) SendPaymentReminder(ctx context.Context, phone string, e domain.PaymentReminder) domain.DeliveryOutcome {
	return d.Send(ctx, phone, e)
}

func (d *Dispatcher) SendSiteVisitRequest(ctx context.Context, phone string, e domain.SiteVisitRequest) domain.DeliveryOutcome {
	return d.Send(ctx, phone, e)
}

func (d *Dispatcher) SendSiteVisitConfirmation(ctx context.Context, phone string, e domain.SiteVisitConfirmation) domain.DeliveryOutcome {
	return d.Send(ctx, phone, e)
}

func (d *Dispatcher) SendSiteVisitReminder(ctx context.Context, phone string, e domain.SiteVisitReminder) domain.DeliveryOutcome {
	return d.Send(ctx, phone, e)
}

func (d *Dispatcher) SendExpressInterest(ctx context.Context, phone string, e domain.ExpressInterest) domain.DeliveryOutcome {
	return d.Send(ctx, phone, e)
}

func (d *Dispatcher) SendUnitAvailable(ctx context.Context, phone string, e domain.UnitAvailable) domain.DeliveryOutcome {
	return d.Send(ctx, phone, e)
}

func (d *Dispatcher) SendWelcome(ctx context.Context, phone string, e domain.Welcome) domain.DeliveryOutcome {
	return d.Send(ctx, phone, e)
}

func (d *Dispatcher) SendAccountVerification(ctx context.Context, phone string, e domain.AccountVerification) domain.DeliveryOutcome {
	return d.Send(ctx, phone, e)
}

func (d *Dispatcher) SendPasswordReset(ctx context.Context, phone string, e domain.PasswordReset) domain.DeliveryOutcome {
	return d.Send(ctx, phone, e)
}

// SendCustom sends text verbatim, bypassing the catalog
func (d *Dispatcher) SendCustom(ctx context.Context, phone, text string) domain.DeliveryOutcome {
	return d.mustDispatch(ctx, domain.NewCustomRequest(phone, text))
}

func (d *Dispatcher) mustDispatch(ctx context.Context, req domain.DispatchRequest) domain.DeliveryOutcome {
	outcome, err := d.Dispatch(ctx, req)
	if err != nil {
		panic(fmt.Sprintf("dispatcher: %v", err))
	}
	return outcome
}
