package random

import (
	"crypto/rand"
	"math/big"
)

const digits = "0123456789"

// Random provides random number generation that can be mocked for testing.
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// Digits generates a random numeric string of the given length
	Digits(length int) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	max := big.NewInt(int64(n))
	result, err := rand.Int(rand.Reader, max)
	if err != nil {
		// Fall back to 0 on error (should never happen with crypto/rand)
		return 0
	}
	return int(result.Int64())
}

// Digits generates a random numeric string of the given length. The space is
// wide, but callers generating identities must still check uniqueness and
// retry rather than assume no collision.
func (r *CryptoRandom) Digits(length int) string {
	if length <= 0 {
		return ""
	}
	result := make([]byte, length)
	for i := range result {
		result[i] = digits[r.Intn(len(digits))]
	}
	return string(result)
}
