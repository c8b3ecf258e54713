package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTwilioBaseURL = "https://api.twilio.com"

// TwilioProvider sends SMS via the Twilio Messages REST API.
type TwilioProvider struct {
	accountSID string
	authToken  string
	baseURL    string
	client     *http.Client
	logger     *slog.Logger
}

func NewTwilioProvider(accountSID, authToken string, timeout time.Duration, logger *slog.Logger) *TwilioProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TwilioProvider{
		accountSID: accountSID,
		authToken:  authToken,
		baseURL:    defaultTwilioBaseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// WithBaseURL points the provider at a different API host. Used by tests.
func (p *TwilioProvider) WithBaseURL(baseURL string) *TwilioProvider {
	p.baseURL = strings.TrimSuffix(baseURL, "/")
	return p
}

func (p *TwilioProvider) Name() string {
	return "twilio"
}

// Send posts one message and returns the Twilio message SID.
func (p *TwilioProvider) Send(ctx context.Context, body, recipient, sender string) (string, error) {
	form := url.Values{}
	form.Set("To", recipient)
	form.Set("From", sender)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", p.baseURL, url.PathEscape(p.accountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(p.accountSID, p.authToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("twilio: received status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var message struct {
		SID string `json:"sid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&message); err != nil {
		return "", fmt.Errorf("twilio: decoding response: %w", err)
	}
	return message.SID, nil
}
