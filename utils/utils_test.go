package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+14155552671", true},
		{"14155552671", true},
		{"  +14155552671  ", true},
		{"+123456", false},
		{"+1234567890123456", false},
		{"+1-415-555-2671", false},
		{"not a phone", false},
		{"", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.valid, ValidatePhoneNumber(tc.phone), "phone %q", tc.phone)
	}
}

func TestGenerateTempPassword(t *testing.T) {
	pw, err := GenerateTempPassword(12)
	require.NoError(t, err)
	assert.Len(t, pw, 12)

	// Ambiguous characters are excluded from the charset.
	assert.NotContains(t, pw, "0")
	assert.NotContains(t, pw, "O")
	assert.NotContains(t, pw, "I")
	assert.NotContains(t, pw, "l")
	assert.NotContains(t, pw, "1")

	other, err := GenerateTempPassword(12)
	require.NoError(t, err)
	assert.NotEqual(t, pw, other)
}

func TestGenerateTempPasswordDefaultLength(t *testing.T) {
	pw, err := GenerateTempPassword(0)
	require.NoError(t, err)
	assert.Len(t, pw, 12)
}
