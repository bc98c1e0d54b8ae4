// Package detrand provides small deterministic, seed-driven pseudo-random
// helpers used to diversify the parameter sweep (sort-mode shuffles) without
// touching math/rand's global state. The mixing function is the same
// unrolled xxhash64 avalanche kelindar/noise uses for its coordinate
// hashing, repurposed here for shuffling slices of indices instead of
// generating noise fields.
package detrand

import "math/bits"

// mix64 is the xxhash64-style avalanche used by kelindar/noise's White/IntN.
// Source: https://github.com/zeebo/xxh3
func mix64(v, seed uint64) uint64 {
	x := v ^ (0x1cad21f72c81017c ^ 0xdb979083e96dd4de) + seed
	x ^= bits.RotateLeft64(x, 49) ^ bits.RotateLeft64(x, 24)
	x *= 0x9fb21c651e98df25
	x ^= (x >> 35) + 4
	x *= 0x9fb21c651e98df25
	x ^= (x >> 28)
	return x
}

// Uint64 returns a deterministic value derived from seed and x.
func Uint64(seed uint32, x uint64) uint64 {
	return mix64(x, uint64(seed))
}

// IntN returns a deterministic int in [0, n) derived from seed and x.
// Panics if n <= 0, matching kelindar/noise's IntN contract.
func IntN(seed uint32, n int, x uint64) int {
	if n <= 0 {
		panic("detrand: invalid n")
	}
	return int(mix64(x, uint64(seed)) % uint64(n))
}

// Shuffle performs a deterministic Fisher-Yates shuffle of xs driven by
// seed, so the same (seed, len(xs)) pair always produces the same
// permutation. Used to build the K diversified sort-mode orderings the
// orchestrator's parameter sweep needs (spec §4.9).
func Shuffle[T any](seed uint32, xs []T) {
	for i := len(xs) - 1; i > 0; i-- {
		j := IntN(seed, i+1, uint64(i))
		xs[i], xs[j] = xs[j], xs[i]
	}
}
