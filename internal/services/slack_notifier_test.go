package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conwon99/twilio-webhook/internal/models"
)

func TestNewSlackNotifierValidation(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"bad scheme", "ftp://hooks.slack.com/services/x"},
		{"no host", "https://"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSlackNotifier(tt.url, time.Second, discardLogger())
			assert.Error(t, err)
		})
	}
}

func TestSlackNotifyPostsBlocks(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	notifier, err := NewSlackNotifier(srv.URL, time.Second, discardLogger())
	require.NoError(t, err)

	fields := models.SubmissionFields{
		"name":      "A",
		"phone":     "07792145328",
		"_internal": "hidden",
	}
	require.NoError(t, notifier.Notify(context.Background(), fields))

	blocks, ok := received["blocks"].([]any)
	require.True(t, ok)
	require.Len(t, blocks, 2)

	raw, err := json.Marshal(received)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hidden")
	assert.Contains(t, string(raw), "07792145328")
}

func TestSlackNotifyNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	notifier, err := NewSlackNotifier(srv.URL, time.Second, discardLogger())
	require.NoError(t, err)

	err = notifier.Notify(context.Background(), models.SubmissionFields{"name": "A"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "invalid_payload")
}
