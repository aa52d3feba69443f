package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"rahul kumar", "Rahul Kumar"},
		{"RAHUL KUMAR", "Rahul Kumar"},
		{"Rahul Kumar", "Rahul Kumar"},
		{"  rahul   kumar  ", "Rahul Kumar"},
		{"McDonald", "McDonald"},
		{"A Singh", "A Singh"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Name(tt.in), "Name(%q)", tt.in)
	}
}
