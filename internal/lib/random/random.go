package random

import (
	"crypto/rand"
	"encoding/hex"
)

// NewHexID returns a random hex string of size bytes (2*size characters).
func NewHexID(size int) string {
	bytes := make([]byte, size)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}
