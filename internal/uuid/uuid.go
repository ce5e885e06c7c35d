// Package uuid hands out roll IDs behind an interface so tests can pin them.
package uuid

import (
	"sync"

	"github.com/google/uuid"
)

// Generator creates unique IDs
type Generator interface {
	New() string
}

type randomGenerator struct{}

// NewGenerator returns a generator of random (version 4) UUIDs
func NewGenerator() Generator {
	return randomGenerator{}
}

// New implements Generator
func (randomGenerator) New() string {
	return uuid.NewString()
}

// SequenceGenerator returns preset IDs in order, then random UUIDs
type SequenceGenerator struct {
	mu  sync.Mutex
	ids []string
}

// NewSequenceGenerator creates a generator over the given IDs
func NewSequenceGenerator(ids ...string) *SequenceGenerator {
	return &SequenceGenerator{ids: ids}
}

// New implements Generator
func (g *SequenceGenerator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.ids) == 0 {
		return uuid.NewString()
	}
	id := g.ids[0]
	g.ids = g.ids[1:]
	return id
}
