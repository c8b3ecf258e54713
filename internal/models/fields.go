package models

import (
	"fmt"
	"strings"
)

// ReservedPrefix marks internal keys that are never rendered or forwarded.
const ReservedPrefix = "_"

// SubmissionFields is the flat field map extracted from a form submission.
// Values are whatever JSON scalars the form builder sent; accessors coerce
// them to strings.
type SubmissionFields map[string]any

// Alias sets for the recognized semantic fields. Checked in slice order.
var (
	ServiceKeys = []string{"service", "field", "type"}
	MessageKeys = []string{"message", "comment", "details"}
	WebsiteKeys = []string{"websiteUrl", "website", "siteUrl"}
)

// String returns the trimmed string form of a single key, or "" when the key
// is absent or nil.
func (f SubmissionFields) String(key string) string {
	v, ok := f[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// First returns the first non-empty value among keys.
func (f SubmissionFields) First(keys ...string) string {
	for _, key := range keys {
		if v := f.String(key); v != "" {
			return v
		}
	}
	return ""
}

// Name resolves the submitter name: a plain "name" field wins, otherwise
// firstName and lastName are composed with a single space, either part
// omitted when absent.
func (f SubmissionFields) Name() string {
	if v := f.String("name"); v != "" {
		return v
	}
	first := f.String("firstName")
	last := f.String("lastName")
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	default:
		return last
	}
}

func (f SubmissionFields) Email() string { return f.String("email") }

func (f SubmissionFields) Phone() string { return f.String("phone") }

func (f SubmissionFields) Service() string { return f.First(ServiceKeys...) }

func (f SubmissionFields) Message() string { return f.First(MessageKeys...) }

// WebsiteURL resolves the origin of the submission, used as the mapping
// table lookup key. No scheme or host normalization is applied; the table is
// expected to carry the key exactly as the form builder sends it.
func (f SubmissionFields) WebsiteURL() string { return f.First(WebsiteKeys...) }
