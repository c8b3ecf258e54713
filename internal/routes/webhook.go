package routes

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Conwon99/twilio-webhook/internal/message"
	"github.com/Conwon99/twilio-webhook/internal/models"
	"github.com/Conwon99/twilio-webhook/internal/payload"
	"github.com/Conwon99/twilio-webhook/internal/repository"
	"github.com/Conwon99/twilio-webhook/internal/services"
	"github.com/Conwon99/twilio-webhook/pkg/metrics"
)

// HookSecretHeader is the secret-echo header used by the upstream push
// service to verify endpoint ownership before enabling delivery.
const HookSecretHeader = "X-Hook-Secret"

var allowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}

// WebhookHandler implements the method-dispatched form-submission endpoint.
type WebhookHandler struct {
	dispatcher *services.Dispatcher
	forwarder  *services.LogForwarder
	store      *repository.LogStore
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewWebhookHandler(
	dispatcher *services.Dispatcher,
	forwarder *services.LogForwarder,
	store *repository.LogStore,
	metricsCollector *metrics.Metrics,
	logger *slog.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		dispatcher: dispatcher,
		forwarder:  forwarder,
		store:      store,
		metrics:    metricsCollector,
		logger:     logger,
	}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("request_id", uuid.NewString()))
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("unexpected error handling request", slog.Any("panic", rec))
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":     "internal server error",
				"message":   "the request could not be processed",
				"timestamp": timestamp(),
			})
		}
	}()

	writeCORS(w)
	h.metrics.IncReceived()

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		h.handleGet(w, r, logger)
	case http.MethodPost:
		h.handlePost(w, r, logger)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
			"error":          "method not allowed",
			"allowedMethods": allowedMethods,
		})
	}
}

// handleGet answers verification traffic: secret echo first, then the
// challenge exchange, then a plain liveness payload.
func (h *WebhookHandler) handleGet(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	if h.echoHandshake(w, r, logger) {
		return
	}

	if challenge := r.URL.Query().Get("challenge"); challenge != "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"challenge": challenge,
			"message":   "verified",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "webhook endpoint is live",
		"method":    r.Method,
		"timestamp": timestamp(),
	})
}

func (h *WebhookHandler) handlePost(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	// The handshake takes precedence over body parsing: registration probes
	// may carry arbitrary bodies.
	if h.echoHandshake(w, r, logger) {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.metrics.IncRejected()
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "could not read request body",
			"details": err.Error(),
		})
		return
	}

	fields, err := payload.Normalize(body)
	if err != nil {
		h.metrics.IncRejected()
		var parseErr *payload.ParseError
		if errors.As(err, &parseErr) {
			logger.Warn("rejecting malformed payload", slog.Any("error", parseErr))
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":   "invalid JSON payload",
				"details": parseErr.Err.Error(),
			})
			return
		}
		logger.Warn("rejecting empty payload")
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "payload contained no form fields",
		})
		return
	}

	h.store.Append(repository.Entry{
		Type:       repository.EntryTypeSubmission,
		Method:     r.Method,
		Submission: fields,
		Headers:    captureHeaders(r),
	})
	h.forwarder.Forward(services.ForwardRecord{
		Type:       repository.EntryTypeSubmission,
		Method:     r.Method,
		Submission: fields,
		Headers:    captureHeaders(r),
	})

	rendered := message.Render(fields)
	result := h.dispatcher.Dispatch(r.Context(), fields, rendered)
	h.metrics.IncAccepted()

	writeJSON(w, http.StatusOK, models.SubmissionResponse{
		Success:           true,
		Message:           "submission processed",
		ReceivedAt:        timestamp(),
		SlackSent:         result.Slack.Sent(),
		BusinessSmsSent:   result.BusinessSMS.Sent(),
		AdditionalSmsSent: result.SecondarySMS.Sent(),
		CustomerSmsSent:   result.CustomerSMS.Sent(),
	})
}

// echoHandshake handles the secret-echo registration exchange. The header
// value is echoed back byte-for-byte with an empty body.
func (h *WebhookHandler) echoHandshake(w http.ResponseWriter, r *http.Request, logger *slog.Logger) bool {
	secret := r.Header.Get(HookSecretHeader)
	if secret == "" {
		return false
	}
	h.metrics.IncHandshake()
	h.store.Append(repository.Entry{
		Type:    repository.EntryTypeHandshake,
		Method:  r.Method,
		Headers: captureHeaders(r),
	})
	logger.Info("answered registration handshake", slog.String("method", r.Method))
	w.Header().Set(HookSecretHeader, secret)
	w.WriteHeader(http.StatusOK)
	return true
}

func captureHeaders(r *http.Request) map[string]string {
	headers := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		headers[name] = strings.Join(values, ", ")
	}
	return headers
}

func writeCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", strings.Join(allowedMethods, ", "))
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+HookSecretHeader)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
