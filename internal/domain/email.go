package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeEmailData holds data for the welcome email sent after registration.
type WelcomeEmailData struct {
	Email string
	Name  string
}

// TicketConfirmationEmailData holds data for the purchase confirmation email.
type TicketConfirmationEmailData struct {
	Email      string
	Name       string
	EventTitle string
	EventDate  string
	EventTime  string
	Location   string
	Quantity   int
	TotalPrice float64
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcome(ctx context.Context, data *WelcomeEmailData) error
	SendTicketConfirmation(ctx context.Context, data *TicketConfirmationEmailData) error
}
