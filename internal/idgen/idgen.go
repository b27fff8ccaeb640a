// Package idgen abstracts identifier generation so that uniqueness is an
// explicit, injectable dependency rather than an ad hoc side effect.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces opaque unique identifiers.
type Generator interface {
	NewID() string
}

// UUID generates random (v4) UUID identifiers.
type UUID struct{}

// NewUUID creates the production UUID generator.
func NewUUID() UUID { return UUID{} }

func (UUID) NewID() string { return uuid.New().String() }

// Sequence generates deterministic identifiers ("<prefix>-1", "<prefix>-2", ...).
// Intended for tests.
type Sequence struct {
	prefix string
	n      atomic.Int64
}

// NewSequence creates a deterministic generator with the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s-%d", s.prefix, s.n.Add(1))
}
