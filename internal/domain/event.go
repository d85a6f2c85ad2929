package domain

// Event is a typed business event that knows its MessageKind and the
// template values it carries.
type Event interface {
	Kind() MessageKind
	Data() EventData
}

type BookingConfirmation struct {
	VenueName string  `json:"venue_name"`
	EventDate string  `json:"event_date"`
	TotalCost float64 `json:"total_cost"`
}

func (BookingConfirmation) Kind() MessageKind { return KindBookingConfirmation }

func (e BookingConfirmation) Data() EventData {
	return EventData{
		"venue_name": e.VenueName,
		"event_date": e.EventDate,
		"total_cost": e.TotalCost,
	}
}

type BookingReminder struct {
	VenueName string `json:"venue_name"`
	EventDate string `json:"event_date"`
	DaysUntil int    `json:"days_until"`
}

func (BookingReminder) Kind() MessageKind { return KindBookingReminder }

func (e BookingReminder) Data() EventData {
	return EventData{
		"venue_name": e.VenueName,
		"event_date": e.EventDate,
		"days_until": e.DaysUntil,
	}
}

type PaymentReminder struct {
	VenueName string  `json:"venue_name"`
	AmountDue float64 `json:"amount_due"`
	DueDate   string  `json:"due_date"`
}

func (PaymentReminder) Kind() MessageKind { return KindPaymentReminder }

func (e PaymentReminder) Data() EventData {
	return EventData{
		"venue_name": e.VenueName,
		"amount_due": e.AmountDue,
		"due_date":   e.DueDate,
	}
}

type SiteVisitRequest struct {
	ContactName     string `json:"contact_name"`
	VisitDate       string `json:"visit_date"`
	VisitTime       string `json:"visit_time"`
	PropertyName    string `json:"property_name"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

func (SiteVisitRequest) Kind() MessageKind { return KindSiteVisitRequest }

func (e SiteVisitRequest) Data() EventData {
	return EventData{
		"contact_name":     e.ContactName,
		"visit_date":       e.VisitDate,
		"visit_time":       e.VisitTime,
		"property_name":    e.PropertyName,
		"special_requests": e.SpecialRequests,
	}
}

type SiteVisitConfirmation struct {
	ContactName     string `json:"contact_name"`
	VisitDate       string `json:"visit_date"`
	VisitTime       string `json:"visit_time"`
	PropertyName    string `json:"property_name"`
	PropertyAddress string `json:"property_address"`
}

func (SiteVisitConfirmation) Kind() MessageKind { return KindSiteVisitConfirmation }

func (e SiteVisitConfirmation) Data() EventData {
	return EventData{
		"contact_name":     e.ContactName,
		"visit_date":       e.VisitDate,
		"visit_time":       e.VisitTime,
		"property_name":    e.PropertyName,
		"property_address": e.PropertyAddress,
	}
}

type SiteVisitReminder struct {
	ContactName     string `json:"contact_name"`
	VisitDate       string `json:"visit_date"`
	VisitTime       string `json:"visit_time"`
	PropertyName    string `json:"property_name"`
	PropertyAddress string `json:"property_address"`
	HoursUntil      int    `json:"hours_until"`
}

func (SiteVisitReminder) Kind() MessageKind { return KindSiteVisitReminder }

func (e SiteVisitReminder) Data() EventData {
	return EventData{
		"contact_name":     e.ContactName,
		"visit_date":       e.VisitDate,
		"visit_time":       e.VisitTime,
		"property_name":    e.PropertyName,
		"property_address": e.PropertyAddress,
		"hours_until":      e.HoursUntil,
	}
}

type ExpressInterest struct {
	ContactName     string `json:"contact_name"`
	PropertyName    string `json:"property_name"`
	Timeframe       string `json:"timeframe"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

func (ExpressInterest) Kind() MessageKind { return KindExpressInterest }

func (e ExpressInterest) Data() EventData {
	return EventData{
		"contact_name":     e.ContactName,
		"property_name":    e.PropertyName,
		"timeframe":        e.Timeframe,
		"special_requests": e.SpecialRequests,
	}
}

type UnitAvailable struct {
	ContactName  string  `json:"contact_name"`
	PropertyName string  `json:"property_name"`
	UnitName     string  `json:"unit_name"`
	Price        float64 `json:"price"`
}

func (UnitAvailable) Kind() MessageKind { return KindUnitAvailable }

func (e UnitAvailable) Data() EventData {
	return EventData{
		"contact_name":  e.ContactName,
		"property_name": e.PropertyName,
		"unit_name":     e.UnitName,
		"price":         e.Price,
	}
}

type Welcome struct {
	FirstName string `json:"first_name"`
}

func (Welcome) Kind() MessageKind { return KindWelcome }

func (e Welcome) Data() EventData {
	return EventData{"first_name": e.FirstName}
}

type AccountVerification struct {
	Code string `json:"code"`
}

func (AccountVerification) Kind() MessageKind { return KindAccountVerification }

func (e AccountVerification) Data() EventData {
	return EventData{"code": e.Code}
}

type PasswordReset struct {
	Code string `json:"code"`
}

func (PasswordReset) Kind() MessageKind { return KindPasswordReset }

func (e PasswordReset) Data() EventData {
	return EventData{"code": e.Code}
}
