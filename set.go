package sparsehash

// Set is a key-only associative container sharing the same sparse
// bucket array and probing engine as Map (the value type is struct{},
// which contributes no storage to each slot).
type Set[K comparable] struct {
	e *engine[K, struct{}]
}

// NewSet returns a new Set with a capacity the growth policy rounds up
// from the requested minimum.
func NewSet[K comparable](capacity int, opts ...Option[K, struct{}]) (*Set[K], error) {
	e, err := newEngine[K, struct{}](capacity, opts...)
	if err != nil {
		return nil, err
	}

	return &Set[K]{e: e}, nil
}

// Has reports whether key is in the set.
func (s *Set[K]) Has(key K) bool {
	_, ok := s.e.get(key)
	return ok
}

// Put adds key to the set, reporting whether it was new.
func (s *Set[K]) Put(key K) (bool, error) {
	return s.e.insert(key, struct{}{})
}

// Delete removes key from the set, reporting whether it was present.
func (s *Set[K]) Delete(key K) bool {
	return s.e.delete(key)
}

// Size returns the number of keys currently stored.
func (s *Set[K]) Size() int { return s.e.size }

// BucketCount returns the current logical bucket count.
func (s *Set[K]) BucketCount() int { return s.e.arr.bucketCount }

// LoadFactor returns size() / bucket_count().
func (s *Set[K]) LoadFactor() float64 { return s.e.loadFactor() }

// MaxLoadFactor returns the configured max load factor.
func (s *Set[K]) MaxLoadFactor() float64 { return s.e.maxLoad }

// Reserve ensures n additional inserts can proceed without an
// intermediate rehash.
func (s *Set[K]) Reserve(n int) error { return s.e.reserve(n) }

// Rehash forces the bucket count to at least n, relocating every entry.
func (s *Set[K]) Rehash(n int) error { return s.e.rehash(n) }

// Clear removes every key. The bucket count is retained.
func (s *Set[K]) Clear() { s.e.clear() }

// Compact sweeps tombstones in place without changing the bucket count.
func (s *Set[K]) Compact() { s.e.compact() }

// Stats reports the set's internal counters.
func (s *Set[K]) Stats() Stats { return s.e.stats() }

// MaxProbeLength scans every occupied bucket and returns the longest
// probe chain observed.
func (s *Set[K]) MaxProbeLength() int { return s.e.maxProbeLength() }

// Begin returns an iterator to the first occupied bucket in ascending
// bucket-index order, or the end sentinel if the set is empty.
func (s *Set[K]) Begin() Iterator[K, struct{}] { return s.e.begin() }

// End returns the end sentinel iterator.
func (s *Set[K]) End() Iterator[K, struct{}] { return s.e.end() }

// Erase removes the key at it and returns an iterator to the next
// occupied bucket.
func (s *Set[K]) Erase(it Iterator[K, struct{}]) Iterator[K, struct{}] {
	return s.e.eraseIterator(it)
}

// Each calls fn for every key in ascending bucket order, stopping early
// if fn returns false.
func (s *Set[K]) Each(fn func(key K) bool) {
	s.e.arr.iterate(func(_ int, sl *slot[K, struct{}]) bool {
		return fn(sl.key)
	})
}
