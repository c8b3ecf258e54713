package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Conwon99/twilio-webhook/internal/mapping"
	"github.com/Conwon99/twilio-webhook/internal/models"
	"github.com/Conwon99/twilio-webhook/internal/phone"
	"github.com/Conwon99/twilio-webhook/pkg/metrics"
)

// Dispatcher fans a normalized submission out to the notification channels.
// Each channel runs independently; one channel failing never affects the
// others or the HTTP response.
type Dispatcher struct {
	chat               ChatNotifier
	sms                SMSProvider
	mappings           *mapping.Loader
	phones             *phone.Normalizer
	defaultSender      string
	secondaryRecipient string
	confirmationText   string
	metrics            *metrics.Metrics
	logger             *slog.Logger
}

// DispatcherOptions configures the Dispatcher. Chat may be nil when no team
// channel is configured; that channel is then skipped, not failed.
type DispatcherOptions struct {
	Chat               ChatNotifier
	SMS                SMSProvider
	Mappings           *mapping.Loader
	Phones             *phone.Normalizer
	DefaultSender      string
	SecondaryRecipient string
	ConfirmationText   string
	Metrics            *metrics.Metrics
	Logger             *slog.Logger
}

func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	return &Dispatcher{
		chat:               opts.Chat,
		sms:                opts.SMS,
		mappings:           opts.Mappings,
		phones:             opts.Phones,
		defaultSender:      opts.DefaultSender,
		secondaryRecipient: opts.SecondaryRecipient,
		confirmationText:   opts.ConfirmationText,
		metrics:            opts.Metrics,
		logger:             opts.Logger,
	}
}

// channelTask is one named delivery action wrapped by the outcome-capturing
// adapter in Dispatch.
type channelTask struct {
	name string
	slot *models.Outcome
	run  func(context.Context) models.Outcome
}

// Dispatch runs the four channel tasks concurrently and waits for every
// outcome before returning. rendered is the formatted message body shared by
// the business and secondary SMS channels.
func (d *Dispatcher) Dispatch(ctx context.Context, fields models.SubmissionFields, rendered string) models.DispatchResult {
	var result models.DispatchResult
	tasks := []channelTask{
		{name: "slack", slot: &result.Slack, run: func(ctx context.Context) models.Outcome {
			return d.notifySlack(ctx, fields)
		}},
		{name: "business_sms", slot: &result.BusinessSMS, run: func(ctx context.Context) models.Outcome {
			return d.sendBusinessSMS(ctx, fields, rendered)
		}},
		{name: "secondary_sms", slot: &result.SecondarySMS, run: func(ctx context.Context) models.Outcome {
			return d.sendSecondarySMS(ctx, rendered)
		}},
		{name: "customer_sms", slot: &result.CustomerSMS, run: func(ctx context.Context) models.Outcome {
			return d.sendCustomerSMS(ctx, fields)
		}},
	}

	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func(task channelTask) {
			defer wg.Done()
			*task.slot = d.runChannel(ctx, task)
		}(task)
	}
	wg.Wait()
	return result
}

// runChannel executes one channel and converts any failure, including a
// panic inside a provider client, into a contained failed outcome.
func (d *Dispatcher) runChannel(ctx context.Context, task channelTask) (outcome models.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = models.FailedOutcome(fmt.Errorf("channel panic: %v", r))
			d.observe(task.name, outcome)
		}
	}()
	outcome = task.run(ctx)
	d.observe(task.name, outcome)
	return outcome
}

func (d *Dispatcher) observe(channel string, outcome models.Outcome) {
	switch outcome.Status {
	case models.StatusSent:
		d.metrics.IncSent()
		d.logger.Info("channel delivered",
			slog.String("channel", channel), slog.String("message_id", outcome.ID))
	case models.StatusSkipped:
		d.metrics.IncSkipped()
		d.logger.Debug("channel skipped",
			slog.String("channel", channel), slog.String("reason", outcome.Reason))
	case models.StatusFailed:
		d.metrics.IncFailed()
		d.logger.Error("channel delivery failed",
			slog.String("channel", channel), slog.Any("error", outcome.Err))
	}
}

func (d *Dispatcher) notifySlack(ctx context.Context, fields models.SubmissionFields) models.Outcome {
	if d.chat == nil {
		return models.SkippedOutcome("not configured")
	}
	if err := d.chat.Notify(ctx, fields); err != nil {
		return models.FailedOutcome(err)
	}
	return models.SentOutcome("")
}

func (d *Dispatcher) sendBusinessSMS(ctx context.Context, fields models.SubmissionFields, rendered string) models.Outcome {
	origin := fields.WebsiteURL()
	if origin == "" {
		return models.SkippedOutcome("no origin in payload")
	}
	entry, ok := d.mappings.Lookup(origin)
	if !ok {
		return models.SkippedOutcome("no mapping")
	}

	destination := entry.Destination
	if !strings.HasPrefix(destination, "+") {
		destination = d.phones.Normalize(destination)
	}
	sender := entry.SenderOverride
	if sender == "" {
		sender = d.defaultSender
	}

	id, err := d.sms.Send(ctx, rendered, destination, sender)
	if err != nil {
		return models.FailedOutcome(err)
	}
	return models.SentOutcome(id)
}

func (d *Dispatcher) sendSecondarySMS(ctx context.Context, rendered string) models.Outcome {
	id, err := d.sms.Send(ctx, rendered, d.secondaryRecipient, d.defaultSender)
	if err != nil {
		return models.FailedOutcome(err)
	}
	return models.SentOutcome(id)
}

func (d *Dispatcher) sendCustomerSMS(ctx context.Context, fields models.SubmissionFields) models.Outcome {
	raw := fields.Phone()
	if raw == "" {
		return models.SkippedOutcome("no phone")
	}
	id, err := d.sms.Send(ctx, d.confirmationText, d.phones.Normalize(raw), d.defaultSender)
	if err != nil {
		return models.FailedOutcome(err)
	}
	return models.SentOutcome(id)
}
