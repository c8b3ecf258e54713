// Package message renders a submission field map into the multi-line text
// body delivered over SMS. Rendering is pure and deterministic: the same map
// always produces byte-identical output.
package message

import (
	"sort"
	"strings"

	"github.com/Conwon99/twilio-webhook/internal/models"
)

const header = "New form submission:"

// recognizedKeys covers every alias consumed by the fixed-order section, so
// the generic tail only carries genuinely unknown fields.
var recognizedKeys = map[string]bool{
	"name":       true,
	"firstName":  true,
	"lastName":   true,
	"email":      true,
	"phone":      true,
	"service":    true,
	"field":      true,
	"type":       true,
	"message":    true,
	"comment":    true,
	"details":    true,
	"websiteUrl": true,
	"website":    true,
	"siteUrl":    true,
}

// Render produces the SMS body: the fixed header, the recognized fields in
// fixed order (each skipped when absent under all aliases), then any
// unrecognized fields in sorted key order. Keys with the reserved prefix are
// never rendered.
func Render(fields models.SubmissionFields) string {
	lines := []string{header}

	appendLine := func(label, value string) {
		if value != "" {
			lines = append(lines, label+": "+value)
		}
	}
	appendLine("Name", fields.Name())
	appendLine("Email", fields.Email())
	appendLine("Phone", fields.Phone())
	appendLine("Service", fields.Service())
	appendLine("Message", fields.Message())
	appendLine("Website", fields.WebsiteURL())

	for _, key := range extraKeys(fields) {
		appendLine(capitalize(key), fields.String(key))
	}

	return strings.Join(lines, "\n")
}

// extraKeys returns the unrecognized, non-reserved keys in sorted order. Go
// map iteration is randomized, so sorting is what keeps rendering stable.
func extraKeys(fields models.SubmissionFields) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		if recognizedKeys[key] || strings.HasPrefix(key, models.ReservedPrefix) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func capitalize(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
