package services

import (
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

func TestForwardPostsRecordInBackground(t *testing.T) {
	received := make(chan ForwardRecord, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var record ForwardRecord
		require.NoError(t, json.Unmarshal(body, &record))
		received <- record
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	forwarder := NewLogForwarder(srv.URL, time.Second, discardLogger())
	forwarder.Forward(ForwardRecord{
		Type:       "submission",
		Method:     "POST",
		Submission: models.SubmissionFields{"name": "A"},
		Headers:    map[string]string{"Content-Type": "application/json"},
	})

	select {
	case record := <-received:
		assert.Equal(t, "submission", record.Type)
		assert.Equal(t, "POST", record.Method)
		assert.Equal(t, "A", record.Submission.String("name"))
	case <-time.After(2 * time.Second):
		t.Fatal("forwarder never delivered the record")
	}
}

func TestForwardDisabledWithoutEndpoint(t *testing.T) {
	forwarder := NewLogForwarder("", time.Second, discardLogger())
	// Must return immediately and never panic.
	forwarder.Forward(ForwardRecord{Type: "submission", Method: "POST"})
}

func TestForwardFailureIsSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	forwarder := NewLogForwarder(srv.URL, 100*time.Millisecond, discardLogger())
	forwarder.Forward(ForwardRecord{Type: "submission", Method: "POST"})

	// Give the goroutine time to fail; the only observable contract is that
	// nothing panics and the caller is never blocked.
	time.Sleep(200 * time.Millisecond)
}
