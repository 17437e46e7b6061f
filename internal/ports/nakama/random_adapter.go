package nakama

import (
	"crypto/rand"
	"fmt"

	"blockpoly/internal/ports"
)

// CryptoRandomAdapter serves verified randomness from the host's CSPRNG.
// The engine only trusts bytes handed to it through this port, mirroring
// an oracle callback flow.
type CryptoRandomAdapter struct{}

// NewCryptoRandomAdapter creates the default randomness source.
func NewCryptoRandomAdapter() *CryptoRandomAdapter {
	return &CryptoRandomAdapter{}
}

// Randomness returns 32 fresh random bytes.
func (a *CryptoRandomAdapter) Randomness() ([]byte, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to draw randomness: %w", err)
	}
	return buf, nil
}

var _ ports.RandomnessPort = (*CryptoRandomAdapter)(nil)
