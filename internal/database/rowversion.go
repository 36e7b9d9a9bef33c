package database

import (
	"crypto/rand"
	"fmt"
)

// NewRowVersion returns a fresh opaque version token. Tokens are
// equality-compared only; their bits carry no meaning.
func NewRowVersion() ([]byte, error) {
	token := make([]byte, 8)
	if _, err := rand.Read(token); err != nil {
		return nil, fmt.Errorf("failed to generate row version: %w", err)
	}
	return token, nil
}
