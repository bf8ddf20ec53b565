// Package random hands out per-invocation pseudo-random generators.
//
// Production sources seed every generator from crypto/rand; seeded sources derive
// each generator from a fixed seed and a counter so a run can be replayed.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"doorhop/internal/app/ports"
)

type Source struct {
	seed   uint64
	seeded bool
	n      atomic.Uint64
}

func NewSource() *Source {
	return &Source{}
}

func NewSeeded(seed int64) *Source {
	return &Source{seed: uint64(seed), seeded: true}
}

func (s *Source) New() ports.Random {
	stream := s.n.Add(1)
	if s.seeded {
		return rand.New(rand.NewPCG(s.seed, stream))
	}
	seed, err := NewSeed()
	if err != nil {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), stream))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
