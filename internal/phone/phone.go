// Package phone canonicalizes submitted phone numbers into international
// dialing format. It is a best-effort reshape, not telecom validation:
// out-of-range numbers are rewritten, never rejected.
package phone

import "strings"

var separators = strings.NewReplacer(" ", "", "-", "")

// Normalizer rewrites national-format numbers using a default country
// calling code and trunk prefix.
type Normalizer struct {
	countryCode string
	trunkPrefix string
}

// New creates a Normalizer. Empty arguments fall back to UK defaults.
func New(countryCode, trunkPrefix string) *Normalizer {
	if countryCode == "" {
		countryCode = "44"
	}
	if trunkPrefix == "" {
		trunkPrefix = "0"
	}
	return &Normalizer{
		countryCode: countryCode,
		trunkPrefix: trunkPrefix,
	}
}

// Normalize returns the canonical "+<digits>" form of raw, or "" when raw is
// empty. Numbers already carrying a leading + pass through unchanged.
func (n *Normalizer) Normalize(raw string) string {
	cleaned := separators.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(cleaned, n.trunkPrefix):
		// National format: swap the single trunk digit for the country code.
		return "+" + n.countryCode + cleaned[len(n.trunkPrefix):]
	case strings.HasPrefix(cleaned, "+"):
		return cleaned
	case strings.HasPrefix(cleaned, n.countryCode):
		// Already in country-code form, just missing the +.
		return "+" + cleaned
	default:
		return "+" + n.countryCode + cleaned
	}
}
