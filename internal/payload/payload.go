// Package payload turns a raw webhook body into the flat submission field
// map, unwrapping the envelope shapes the supported form builders produce.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/Conwon99/twilio-webhook/internal/models"
)

// unwrapKeys are the candidate envelope properties, tried in priority order.
// The first one holding a JSON object replaces the working object. Unwrapping
// happens at most once; a doubly nested envelope is deliberately left alone.
var unwrapKeys = []string{"submission", "data", "payload"}

// ErrEmptyPayload is returned when the body decodes fine but carries no
// usable form fields.
var ErrEmptyPayload = errors.New("payload contained no form fields")

// ParseError wraps a JSON decode failure so the handler can surface the
// parser's message in the 400 response.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "invalid JSON payload: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Normalize extracts the submission field map from a raw request body. An
// absent body is treated as an empty object and therefore reported as empty.
func Normalize(body []byte) (models.SubmissionFields, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ErrEmptyPayload
	}

	var raw map[string]any
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &ParseError{Err: err}
	}

	for _, key := range unwrapKeys {
		if nested, ok := raw[key].(map[string]any); ok {
			raw = nested
			break
		}
	}

	if len(raw) == 0 {
		return nil, ErrEmptyPayload
	}
	return models.SubmissionFields(raw), nil
}
