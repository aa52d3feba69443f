package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ten digits", "9876543210", "+919876543210"},
		{"leading zero", "09876543210", "+919876543210"},
		{"country code", "919876543210", "+919876543210"},
		{"already e164", "+919876543210", "+919876543210"},
		{"spaces and dashes", "98765 432-10", "+919876543210"},
		{"parenthesized", "(+91) 98765 43210", "+919876543210"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"short fallback", "12345678", "+9112345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Phone(tt.in))
		})
	}
}

func TestPhone_Deterministic(t *testing.T) {
	// Every common way of writing the same number collapses to one key.
	variants := []string{"9876543210", "09876543210", "919876543210", "+91 98765 43210"}
	for _, v := range variants {
		assert.Equal(t, "+919876543210", Phone(v), "variant %q", v)
	}
}
