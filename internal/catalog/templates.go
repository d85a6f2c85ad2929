package catalog

import "github.com/victorsprings/notification-service/internal/domain"

type option func(*domain.Template)

func optional(name, line string) option {
	return func(t *domain.Template) {
		if t.Optional == nil {
			t.Optional = make(map[string]string)
		}
		t.Optional[name] = line
	}
}

func currency(names ...string) option {
	return func(t *domain.Template) {
		t.Currency = append(t.Currency, names...)
	}
}

func define(kind domain.MessageKind, subject, body string, opts ...option) *domain.Template {
	t := domain.NewTemplate(kind, subject, body)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func defaults() []*domain.Template {
	return []*domain.Template{
		define(domain.KindBookingConfirmation, "Booking Confirmed", `🏛️ Victor Springs - Booking Confirmed!

Dear valued customer,

Your booking for {venue_name} has been confirmed!

📅 Event Date: {event_date}
💰 Total Amount: KES {total_cost}

Please arrive 30 minutes early for your site visit.
Our team will contact you shortly with additional details.

Thank you for choosing Victor Springs!
📞 Support: {support_phone}`,
			currency("total_cost"),
		),

		define(domain.KindBookingReminder, "Booking Reminder", `⏰ Victor Springs - Booking Reminder!

Hi there,

This is a friendly reminder about your upcoming site visit:

🏛️ Venue: {venue_name}
📅 Date: {event_date}
⏳ Days remaining: {days_until}

Please confirm your availability or contact us if you need to reschedule.

We're excited to host your special event!

📞 Call us: {support_phone}`,
		),

		define(domain.KindPaymentReminder, "Payment Reminder", `💳 Victor Springs - Payment Reminder!

Dear customer,

We hope you're excited about your upcoming event at {venue_name}!

Please note that payment of KES {amount_due} is due by {due_date}.

💰 Payment Methods:
- M-Pesa: Paybill 123456 (Account: Your Booking ID)
- Bank Transfer: Details will be shared upon request

Contact us immediately if you need assistance.

Thank you for your prompt attention!

📞 Support: {support_phone}`,
			currency("amount_due"),
		),

		define(domain.KindSiteVisitRequest, "Site Visit Request Received", `🏛️ Victor Springs - Site Visit Request Received!

Hi {contact_name},

Thank you for your interest in Victor Springs! Your site visit request has been received and is awaiting approval.

📅 Preferred Date: {visit_date}
⏰ Preferred Time: {visit_time}
🏠 Property: {property_name}
{special_requests}

Our team will review your request and confirm the appointment soon. You can track the status by signing into your account at {website_url}.

Questions? Call us: {support_phone}

Thank you for choosing Victor Springs!
🌟 Your Dream Home Awaits`,
			optional("special_requests", "📝 Special Requests: %s"),
		),

		define(domain.KindSiteVisitConfirmation, "Site Visit Confirmed", `✅ Victor Springs - Site Visit Confirmed!

Hi {contact_name},

Great news! Your site visit has been confirmed!

📅 Date: {visit_date}
⏰ Time: {visit_time}
🏠 Property: {property_name}
📍 Address: {property_address}

What to bring:
• Valid ID
• Any specific requirements mentioned during booking
• Comfortable walking shoes

Please arrive 15 minutes early. Our team will be ready to welcome you and show you around.

Questions? Call us: {support_phone}

We're excited to help you find your perfect home!
🏡 Victor Springs`,
		),

		define(domain.KindExpressInterest, "Interest Recorded", `💝 Victor Springs - Interest Recorded!

Hi {contact_name},

Thank you for expressing interest in {property_name}!

✅ Your interest has been recorded in our system
⏰ We'll notify you when units become available within {timeframe}
{special_requests}

To track your requests and get updates, please sign in to your account at {website_url}.

Questions? Call us: {support_phone}

Thank you for choosing Victor Springs!
🌟 Your Dream Home Journey Starts Here`,
			optional("special_requests", "📝 Your notes: %s"),
		),

		define(domain.KindUnitAvailable, "Unit Now Available", `🎉 Victor Springs - Unit Now Available!

Hi {contact_name},

Exciting news! A unit you're interested in is now available!

🏠 Property: {property_name}
🏢 Unit: {unit_name}
💰 Price: KES {price} per month

This is a limited-time availability. Contact us immediately to secure this unit!

📞 Call now: {support_phone}
💬 Or reply to this message

Don't miss this opportunity!
🏡 Victor Springs`,
			currency("price"),
		),

		define(domain.KindSiteVisitReminder, "Site Visit Reminder", `⏰ Victor Springs - Site Visit Reminder!

Hi {contact_name},

This is a friendly reminder about your upcoming site visit!

📅 Date: {visit_date}
⏰ Time: {visit_time} (in {hours_until} hours)
🏠 Property: {property_name}
📍 Address: {property_address}

What to bring:
• Valid ID
• Any specific requirements
• Comfortable walking shoes

Please arrive 15 minutes early. Our team is excited to show you around!

Questions? Call us: {support_phone}

See you soon!
🏡 Victor Springs`,
		),

		define(domain.KindWelcome, "Welcome", `🎉 Welcome to Victor Springs!

Hi {first_name},

Welcome to Victor Springs - Your Gateway to Premium Living!

🏠 Discover our exclusive properties in Nairobi
💰 Competitive pricing with flexible payment plans
🏢 Modern units with world-class amenities
🌟 Exceptional customer service

Explore our properties at {website_url} or call us at {support_phone}.

Your dream home awaits!
🏡 Victor Springs`,
		),

		define(domain.KindAccountVerification, "Account Verification", `🔐 Victor Springs - Account Verification

Your verification code is: {code}

Please enter this code to verify your account.

This code expires in 10 minutes.

Questions? Call us: {support_phone}

🏡 Victor Springs`,
		),

		define(domain.KindPasswordReset, "Password Reset", `🔑 Victor Springs - Password Reset

Your password reset code is: {code}

Use this code to reset your password.

This code expires in 15 minutes.

If you didn't request this reset, please ignore this message.

Questions? Call us: {support_phone}

🏡 Victor Springs`,
		),
	}
}
