package services

import (
	"context"

	"github.com/Conwon99/twilio-webhook/internal/models"
)

// ChatNotifier posts a structured submission summary to a team channel.
type ChatNotifier interface {
	Name() string
	Notify(ctx context.Context, fields models.SubmissionFields) error
}

// SMSProvider delivers a message body from a sender to a recipient and
// returns the provider's message id.
type SMSProvider interface {
	Name() string
	Send(ctx context.Context, body, recipient, sender string) (string, error)
}
