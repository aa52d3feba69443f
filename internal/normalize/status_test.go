package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Follow Up", "follow_up"},
		{"follow-up", "follow_up"},
		{"FOLLOW__UP", "follow_up"},
		{"  Not   Interested ", "not_interested"},
		{"hot", "hot"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Collapse(tt.in), "Collapse(%q)", tt.in)
	}
}

func TestCallStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Connected", "connected"},
		{"connect", "connected"},
		{"Not Answered", "not_answered"},
		{"no answer", "not_answered"},
		{"Call Back", "call_back_requested"},
		{"call-back requested", "call_back_requested"},
		{"Busy", "busy"},
		{"Switched Off", "switched_off"},
		{"switch off", "switched_off"},
		// Unmatched values pass through collapsed but unchanged.
		{"wrong number", "wrong_number"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CallStatus(tt.in), "CallStatus(%q)", tt.in)
	}
}

func TestKnownCallStatus(t *testing.T) {
	assert.True(t, KnownCallStatus("connected"))
	assert.True(t, KnownCallStatus("call_back_requested"))
	assert.False(t, KnownCallStatus("wrong_number"))
	assert.False(t, KnownCallStatus(""))
}
