// Package entropy provides the injectable randomness sources the trade
// engines draw from. Every probabilistic step takes a Source explicitly, so
// production gets a seeded or crypto-backed generator and tests get a fixed
// sequence.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand/v2"
	"sync"
)

// Source yields uniform random floats in [0, 1).
type Source interface {
	Float() float64
}

// Percentile draws a uniform roll in [1, 100].
func Percentile(s Source) int {
	return int(s.Float()*100) + 1
}

// D10 draws a ten-sided die roll in [1, 10].
func D10(s Source) int {
	return int(s.Float()*10) + 1
}

// IntBetween draws a uniform integer in [lo, hi] inclusive.
func IntBetween(s Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	n := lo + int(s.Float()*float64(hi-lo+1))
	if n > hi {
		n = hi
	}
	return n
}

// Chance draws a Bernoulli trial with probability p.
func Chance(s Source, p float64) bool {
	return s.Float() < p
}

type seeded struct {
	mu sync.Mutex
	r  *mathrand.Rand
}

// NewSeeded returns a deterministic source from a 64-bit seed.
func NewSeeded(seed uint64) Source {
	return &seeded{r: mathrand.New(mathrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seeded) Float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

type cryptoSource struct{}

// NewCrypto returns a source backed by crypto/rand.
func NewCrypto() Source { return cryptoSource{} }

func (cryptoSource) Float() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Should never happen; 0.5 keeps the calculation usable.
		return 0.5
	}
	// 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

// Fixed is a test source replaying a fixed float sequence, cycling when
// exhausted.
type Fixed struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewFixed creates a fixed source. Panics on an empty sequence.
func NewFixed(values ...float64) *Fixed {
	if len(values) == 0 {
		panic("entropy: fixed source needs at least one value")
	}
	return &Fixed{values: values}
}

func (f *Fixed) Float() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.values[f.next]
	f.next = (f.next + 1) % len(f.values)
	return v
}

// FromPercentiles builds a fixed source whose Percentile draws replay the
// given rolls (each in [1, 100]) in order.
func FromPercentiles(rolls ...int) *Fixed {
	values := make([]float64, len(rolls))
	for i, r := range rolls {
		values[i] = float64(r-1) / 100
	}
	return NewFixed(values...)
}

// FromD10 builds a fixed source whose D10 draws replay the given rolls
// (each in [1, 10]) in order.
func FromD10(rolls ...int) *Fixed {
	values := make([]float64, len(rolls))
	for i, r := range rolls {
		values[i] = float64(r-1) / 10
	}
	return NewFixed(values...)
}
