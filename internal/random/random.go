// Package random provides the seedable randomness every session draws from.
//
// Sessions never touch a process-wide generator: each engine owns a Source,
// so a fixed seed replays the same dice, exposure checks and card draws.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Source is the subset of *rand.Rand the engine needs
type Source interface {
	// IntN returns a uniform int in [0, n).
	IntN(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// New returns a deterministic PCG generator for seed.
func New(seed int64) *rand.Rand {
	// #nosec G404 -- simulation randomness, not security sensitive
	return rand.New(rand.NewPCG(seedWord(seed, "hi"), seedWord(seed, "lo")))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Shuffle permutes n elements in place with a Fisher-Yates walk.
func Shuffle(r Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		swap(i, j)
	}
}

// Percentile returns a uniform int in [1, 100].
func Percentile(r Source) int {
	return r.IntN(100) + 1
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%d:%s", seed, salt)
	return h.Sum64()
}
