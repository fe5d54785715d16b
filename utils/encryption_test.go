package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY=")

	ciphertext, err := EncryptData("Xk7mQ2pW9rTz")
	require.NoError(t, err)
	assert.NotEqual(t, "Xk7mQ2pW9rTz", ciphertext)

	plaintext, err := DecryptData(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "Xk7mQ2pW9rTz", plaintext)
}

func TestEncryptDataUniqueCiphertexts(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY=")

	first, err := EncryptData("same input")
	require.NoError(t, err)
	second, err := EncryptData("same input")
	require.NoError(t, err)

	// A fresh nonce per call keeps ciphertexts distinct.
	assert.NotEqual(t, first, second)
}

func TestEncryptDataMissingKey(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "")

	_, err := EncryptData("anything")
	assert.Error(t, err)
}

func TestDecryptDataGarbage(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY=")

	_, err := DecryptData("not base64 at all!!!")
	assert.Error(t, err)
}
