package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Conwon99/twilio-webhook/pkg/metrics"
)

// NewRouter wires the webhook endpoint plus lightweight health/metrics
// endpoints so the service can be monitored.
func NewRouter(webhook *WebhookHandler, metricsCollector *metrics.Metrics, started time.Time) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/webhook", webhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "webhook relay healthy",
			"meta": map[string]interface{}{
				"uptime_seconds": int(time.Since(started).Seconds()),
				"timestamp":      time.Now().UTC(),
			},
		})
	})
	mux.Handle("/metrics", metricsCollector.Handler())
	return mux
}
