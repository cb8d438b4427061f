package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator creates opaque IDs, used to correlate the log lines of one
// pipeline run.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct {
	prefix string
}

// NewRandomGenerator returns IDs of 16 random bytes hex encoded, prefixed
// with "<prefix>_" when prefix is not empty.
func NewRandomGenerator(prefix string) *RandomGenerator {
	return &RandomGenerator{prefix: prefix}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	if g.prefix == "" {
		return hex.EncodeToString(buf), nil
	}
	return g.prefix + "_" + hex.EncodeToString(buf), nil
}
