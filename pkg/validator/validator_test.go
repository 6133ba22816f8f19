package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  bool
	}{
		{"valid mobile", "9876543210", true},
		{"valid starting with 6", "6123456789", true},
		{"valid with spaces", "98765 43210", true},
		{"valid with dashes", "98765-43210", true},
		{"too long", "98765432100", false},
		{"too short", "987654321", false},
		{"bad first digit", "5876543210", false},
		{"letters", "98765abcde", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPhone(tt.phone))
		})
	}
}
