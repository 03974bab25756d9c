package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// APIKeyBytes is the entropy of a generated key; the encoded key is twice as long
const APIKeyBytes = 16

// NewAPIKey returns a random hex-encoded API key
func NewAPIKey() (string, error) {
	b := make([]byte, APIKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
