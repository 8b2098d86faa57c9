package notify

import (
	"context"
	"log"
)

type TemplateKind string

const (
	KindAppointmentReminder     TemplateKind = "appointment_reminder"
	KindAppointmentConfirmation TemplateKind = "appointment_confirmation"
	KindMedicationReminder      TemplateKind = "medication_reminder"
	KindPasswordResetCode       TemplateKind = "password_reset_code"
)

type Recipient struct {
	Name  string
	Email string
}

// Sender is the outbound notification channel.
type Sender interface {
	Send(ctx context.Context, to Recipient, kind TemplateKind, payload any) error
}

// LogSender only logs. Used when no e-mail provider is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, to Recipient, kind TemplateKind, _ any) error {
	log.Printf("[notify] %s -> %s (no provider configured)", kind, to.Email)
	return nil
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, to Recipient, kind TemplateKind, payload any) error

func (f SenderFunc) Send(ctx context.Context, to Recipient, kind TemplateKind, payload any) error {
	return f(ctx, to, kind, payload)
}
