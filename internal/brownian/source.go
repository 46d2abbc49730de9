// Package brownian samples standard Wiener processes.
//
// Every sampling function takes its own rand.Source, so two callers never share
// generator state. Seed a source with NewSource to get bit-identical output for
// the same inputs, or use EntropySource for independent runs.
package brownian

import (
	"time"

	"golang.org/x/exp/rand"
)

// NewSource returns a deterministic PCG source.
func NewSource(seed uint64) rand.Source {
	return rand.NewSource(seed)
}

// EntropySource returns a source seeded from the wall clock.
func EntropySource() rand.Source {
	return rand.NewSource(uint64(time.Now().UnixNano()))
}

// SourceFor maps an optional seed onto a source: nil means non-reproducible.
func SourceFor(seed *uint64) rand.Source {
	if seed == nil {
		return EntropySource()
	}
	return NewSource(*seed)
}
