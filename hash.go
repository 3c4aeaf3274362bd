package sparsehash

import "github.com/dolthub/maphash"

// HashFunc maps a key to a 64-bit hash. Must be deterministic for a
// given key and must hash equal keys to equal values.
type HashFunc[K comparable] func(K) uint64

// EqualFunc is the equality predicate a Map/Set uses to confirm a
// candidate match. Heterogeneous lookups (FindAny/EraseAny/HasAny in
// lookup.go) take their match callbacks explicitly instead of routing
// through this type.
type EqualFunc[K comparable] func(a, b K) bool

// defaultEqual is used when no WithEqual option is supplied.
func defaultEqual[K comparable](a, b K) bool {
	return a == b
}

// MakeDefaultHashFunc builds the default hasher for comparable K using
// dolthub/maphash's generic wrapper around hash/maphash. Each call
// produces an independently-seeded hasher, so two Maps may place the
// same key in different buckets unless they share one HashFunc.
func MakeDefaultHashFunc[K comparable]() HashFunc[K] {
	hasher := maphash.NewHasher[K]()

	return func(k K) uint64 {
		return hasher.Hash(k)
	}
}

// hashFragment truncates a 64-bit hash down to the cached fragment
// stored alongside each slot, used as a cheap prefilter before the
// equality predicate runs.
func hashFragment(h uint64) uint32 {
	return uint32(h)
}
