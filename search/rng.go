// Package search - deterministic RNG streams.
//
// math/rand.Rand is not goroutine-safe: every engine owns its generator,
// derived with DeriveSeed or DeriveRNG for parallel runs.
package search

import (
	"math"
	"math/rand"
)

// defaultSeed replaces a zero seed.
const defaultSeed int64 = 1

// golden is the SplitMix64 increment.
const golden = 0x9e3779b97f4a7c15

// RNGFromSeed returns a deterministic *rand.Rand; seed==0 selects the default seed.
func RNGFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed returns the seed of stream number stream under parent. Close
// stream numbers give unrelated seeds.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	z := uint64(parent) ^ (stream + golden)
	return int64(mix64(z + golden))
}

// mix64 is the SplitMix64 finalizer.
func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// DeriveRNG returns the generator of stream under base, drawing one value
// from base. A nil base uses the default seed as parent.
func DeriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	parent := defaultSeed
	if base != nil {
		parent = base.Int63()
	}
	return rand.New(rand.NewSource(DeriveSeed(parent, stream)))
}

// geometric samples the number of failures before the first success of a
// Bernoulli(p) sequence, by inversion. p ≥ 1 always yields 0.
//
// Complexity: O(1).
func geometric(r *rand.Rand, p float64) int {
	if p >= 1 {
		return 0
	}
	u := 1 - r.Float64() // (0,1]
	k := math.Floor(math.Log(u) / math.Log1p(-p))
	if k > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(k)
}
