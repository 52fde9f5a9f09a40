// Package randutil provides the injectable shuffle source used for
// exam composition and per-delivery question ordering, so both can be
// made deterministic in tests.
package randutil

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
)

// Source yields shuffles. Implementations must be safe for concurrent
// use by request handlers.
type Source interface {
	Shuffle(n int, swap func(i, j int))
}

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Source seeded from the OS entropy pool.
func New() Source {
	var seed int64
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(buf[:]))
	}
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

// NewSeeded returns a deterministic Source for tests.
func NewSeeded(seed int64) Source {
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rnd.Shuffle(n, swap)
}
