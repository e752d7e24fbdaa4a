package dice

import (
	crand "crypto/rand"
	"math/rand/v2"
	"sync"
)

// streamSource draws from a ChaCha8 stream keyed once from crypto/rand, so a
// long-running daemon does not pay a syscall per roll.
type streamSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewCryptoSource returns an unseeded Source for production runs.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	var key [32]byte
	if _, err := crand.Read(key[:]); err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return &streamSource{rng: rand.New(rand.NewChaCha8(key))}
}

// Intn implements Source.
func (s *streamSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}
