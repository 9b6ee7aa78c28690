package mocks

import (
	"fmt"

	"github.com/oxturret/turretweb/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// TokenResults is a queue of results to return from Token
	TokenResults []string
	tokenIndex   int

	// StringResults is a queue of results to return from String
	StringResults []string
	stringIndex   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn always returns 0
func (r *MockRandom) Intn(n int) int {
	return 0
}

// String returns the next queued result, or empty string if none remaining
func (r *MockRandom) String(length int, alphabet string) string {
	if r.stringIndex >= len(r.StringResults) {
		return ""
	}
	result := r.StringResults[r.stringIndex]
	r.stringIndex++
	return result
}

// Token returns the next queued result. When the queue is exhausted it
// returns unique fallback tokens so callers that only need distinctness
// keep working.
func (r *MockRandom) Token(n int) string {
	if r.tokenIndex >= len(r.TokenResults) {
		r.tokenIndex++
		return fmt.Sprintf("mock-token-%d", r.tokenIndex)
	}
	result := r.TokenResults[r.tokenIndex]
	r.tokenIndex++
	return result
}

// QueueToken adds values to the Token result queue
func (r *MockRandom) QueueToken(values ...string) {
	r.TokenResults = append(r.TokenResults, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.StringResults = append(r.StringResults, values...)
}
