package testutil

import (
	"math/rand"
	"sync"
)

// PixelBytes is the size of one CIFAR pixel record.
const PixelBytes = 32 * 32 * 3

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// FillBytes fills dst with random bytes.
func (r *RNG) FillBytes(dst []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.rand.Read(dst)
}

// Pixels returns one random channel-planar 32x32 RGB record.
func (r *RNG) Pixels() []byte {
	p := make([]byte, PixelBytes)
	r.FillBytes(p)
	return p
}

// Solid returns a record where every pixel has the given color.
func Solid(red, green, blue byte) []byte {
	p := make([]byte, PixelBytes)
	plane := PixelBytes / 3
	for i := range plane {
		p[i] = red
		p[plane+i] = green
		p[2*plane+i] = blue
	}
	return p
}
