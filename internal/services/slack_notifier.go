package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/Conwon99/twilio-webhook/internal/models"
)

// SlackNotifier posts submissions to a Slack incoming webhook as a block
// payload.
type SlackNotifier struct {
	webhookURL string
	client     *http.Client
	logger     *slog.Logger
}

// NewSlackNotifier validates the webhook URL and builds the notifier.
func NewSlackNotifier(webhookURL string, timeout time.Duration, logger *slog.Logger) (*SlackNotifier, error) {
	if webhookURL == "" {
		return nil, fmt.Errorf("slack: webhook URL is required")
	}
	u, err := url.Parse(webhookURL)
	if err != nil {
		return nil, fmt.Errorf("slack: invalid webhook URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("slack: webhook URL must use http or https scheme, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("slack: webhook URL must include a host")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SlackNotifier{
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

func (s *SlackNotifier) Name() string {
	return "slack"
}

// Notify posts a header block plus one field line per non-reserved submission
// field, in sorted key order.
func (s *SlackNotifier) Notify(ctx context.Context, fields models.SubmissionFields) error {
	body, err := json.Marshal(buildBlocks(fields))
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("slack: received status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func buildBlocks(fields models.SubmissionFields) map[string]any {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		if strings.HasPrefix(key, models.ReservedPrefix) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	sectionFields := make([]map[string]string, 0, len(keys))
	for _, key := range keys {
		value := fields.String(key)
		if value == "" {
			continue
		}
		sectionFields = append(sectionFields, map[string]string{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*%s:*\n%s", key, value),
		})
	}

	blocks := []map[string]any{
		{
			"type": "header",
			"text": map[string]string{
				"type": "plain_text",
				"text": "New form submission",
			},
		},
	}
	if len(sectionFields) > 0 {
		blocks = append(blocks, map[string]any{
			"type":   "section",
			"fields": sectionFields,
		})
	}
	return map[string]any{"blocks": blocks}
}
