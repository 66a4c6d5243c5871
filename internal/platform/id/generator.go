package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator creates opaque identifiers for externally visible records.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct {
	prefix string
}

// NewRandomGenerator returns a generator producing 32 hex chars,
// optionally prefixed (e.g. "pool_").
func NewRandomGenerator(prefix string) *RandomGenerator {
	return &RandomGenerator{prefix: prefix}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return g.prefix + hex.EncodeToString(buf), nil
}

// Fixed always returns the same identifier. Test seam.
type Fixed string

func (f Fixed) NewID() (string, error) {
	return string(f), nil
}
