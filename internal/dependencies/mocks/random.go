package mocks

import (
	"seabattle/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// DigitsResults is a queue of results to return from Digits
	DigitsResults []string
	digitsIndex   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// Digits returns the next queued result. When the queue is exhausted it
// falls back to a deterministic counter so identity generation loops in
// tests always terminate.
func (r *MockRandom) Digits(length int) string {
	if r.digitsIndex >= len(r.DigitsResults) {
		r.digitsIndex++
		return fallbackDigits(r.digitsIndex, length)
	}
	result := r.DigitsResults[r.digitsIndex]
	r.digitsIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueDigits adds values to the Digits result queue
func (r *MockRandom) QueueDigits(values ...string) {
	r.DigitsResults = append(r.DigitsResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.DigitsResults = nil
	r.digitsIndex = 0
}

func fallbackDigits(n, length int) string {
	result := make([]byte, length)
	for i := length - 1; i >= 0; i-- {
		result[i] = byte('0' + n%10)
		n /= 10
	}
	return string(result)
}
