// Package idgen provides the identifier generation used for users, accounts
// and transactions. Generation is injected so tests can run with deterministic
// IDs while production code gets time-ordered randomized ones.
package idgen

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Generator interface {
	NewID(prefix string) string
}

type randomGenerator struct{}

// NewRandom returns the production generator. IDs combine a millisecond
// timestamp with a random tie-breaker; collisions are possible in principle
// and are not detected.
func NewRandom() Generator {
	return randomGenerator{}
}

func (randomGenerator) NewID(prefix string) string {
	return fmt.Sprintf("%s%d%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Sequence hands out PREFIX-000001, PREFIX-000002, ... across all prefixes.
// Intended for tests that need reproducible identifiers.
type Sequence struct {
	n int64
}

func NewSequence() *Sequence {
	return &Sequence{}
}

func (s *Sequence) NewID(prefix string) string {
	s.n++
	return fmt.Sprintf("%s-%06d", prefix, s.n)
}
