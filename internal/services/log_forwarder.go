package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Conwon99/twilio-webhook/internal/models"
)

// ForwardRecord is the payload posted to the external append-log endpoint.
type ForwardRecord struct {
	Type       string                  `json:"type"`
	Method     string                  `json:"method"`
	Submission models.SubmissionFields `json:"submission,omitempty"`
	Headers    map[string]string       `json:"headers,omitempty"`
}

// LogForwarder best-effort copies request records to an external log
// endpoint. Delivery is fire-and-forget: the caller never waits on it and
// failures are logged and discarded.
type LogForwarder struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
	logger   *slog.Logger
}

// NewLogForwarder builds a forwarder. An empty endpoint disables forwarding.
func NewLogForwarder(endpoint string, timeout time.Duration, logger *slog.Logger) *LogForwarder {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LogForwarder{
		endpoint: endpoint,
		timeout:  timeout,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Forward posts the record in a background goroutine and returns immediately.
func (f *LogForwarder) Forward(record ForwardRecord) {
	if f == nil || f.endpoint == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
		defer cancel()
		if err := f.post(ctx, record); err != nil {
			f.logger.Warn("log forward failed", slog.Any("error", err))
		}
	}()
}

func (f *LogForwarder) post(ctx context.Context, record ForwardRecord) error {
	body, err := json.Marshal(record)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	// Discard the response body so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	return nil
}
