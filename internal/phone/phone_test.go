package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	n := New("44", "0")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"national trunk format", "07792145328", "+447792145328"},
		{"already canonical", "+447792145328", "+447792145328"},
		{"country code without plus", "447792145328", "+447792145328"},
		{"bare subscriber number", "7792145328", "+447792145328"},
		{"spaces stripped", "07792 145 328", "+447792145328"},
		{"hyphens stripped", "0779-2145-328", "+447792145328"},
		{"foreign number passes through", "+15551234567", "+15551234567"},
		{"empty input", "", ""},
		{"whitespace only", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestNormalizeDefaults(t *testing.T) {
	n := New("", "")
	assert.Equal(t, "+447792145328", n.Normalize("07792145328"))
}

func TestNormalizeOtherCountry(t *testing.T) {
	n := New("353", "0")
	assert.Equal(t, "+353871234567", n.Normalize("0871234567"))
	assert.Equal(t, "+353871234567", n.Normalize("353871234567"))
}
