package sparsehash

// Map is an associative container over (K, V) pairs backed by a sparse
// bucket array and open-addressing probe engine: a memory-efficient hash
// map that only allocates physical storage for occupied or tombstoned
// buckets, and rehashes itself on load/tombstone thresholds via a
// pluggable growth policy.
type Map[K comparable, V any] struct {
	e *engine[K, V]
}

// New returns a new Map with a capacity the growth policy rounds up
// from the requested minimum.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*Map[K, V], error) {
	e, err := newEngine[K, V](capacity, opts...)
	if err != nil {
		return nil, err
	}

	return &Map[K, V]{e: e}, nil
}

// Get checks whether key is in the map and returns its value.
func (m *Map[K, V]) Get(key K) (V, bool) {
	return m.e.get(key)
}

// Contains reports whether key is in the map.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.e.get(key)
	return ok
}

// Set assigns value to key, overwriting any existing value. Returns an
// error only if growing the table to accommodate the new entry failed
// (ErrMaxCapacityExceeded).
func (m *Map[K, V]) Set(key K, value V) error {
	return m.e.set(key, value)
}

// Insert adds (key, value) only if key is not already present. Returns
// false, without modifying the map, if key was already present.
func (m *Map[K, V]) Insert(key K, value V) (bool, error) {
	return m.e.insert(key, value)
}

// Delete removes key from the map, reporting whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	return m.e.delete(key)
}

// Size returns the number of entries currently stored.
func (m *Map[K, V]) Size() int { return m.e.size }

// BucketCount returns the current logical bucket count.
func (m *Map[K, V]) BucketCount() int { return m.e.arr.bucketCount }

// LoadFactor returns size() / bucket_count().
func (m *Map[K, V]) LoadFactor() float64 { return m.e.loadFactor() }

// MaxLoadFactor returns the configured max load factor.
func (m *Map[K, V]) MaxLoadFactor() float64 { return m.e.maxLoad }

// Reserve ensures n additional inserts can proceed without an
// intermediate rehash.
func (m *Map[K, V]) Reserve(n int) error { return m.e.reserve(n) }

// Rehash forces the bucket count to at least n, relocating every entry.
func (m *Map[K, V]) Rehash(n int) error { return m.e.rehash(n) }

// Clear removes every entry. The bucket count is retained.
func (m *Map[K, V]) Clear() { m.e.clear() }

// Compact sweeps tombstones in place without changing the bucket count.
func (m *Map[K, V]) Compact() { m.e.compact() }

// Stats reports the map's internal counters.
func (m *Map[K, V]) Stats() Stats { return m.e.stats() }

// MaxProbeLength scans every occupied bucket and returns the longest
// probe chain observed, a diagnostic for comparing growth-policy
// behavior under load.
func (m *Map[K, V]) MaxProbeLength() int { return m.e.maxProbeLength() }

// Begin returns an iterator to the first occupied bucket in ascending
// bucket-index order, or the end sentinel if the map is empty.
func (m *Map[K, V]) Begin() Iterator[K, V] { return m.e.begin() }

// End returns the end sentinel iterator.
func (m *Map[K, V]) End() Iterator[K, V] { return m.e.end() }

// Erase removes the entry at it and returns an iterator to the next
// occupied bucket.
func (m *Map[K, V]) Erase(it Iterator[K, V]) Iterator[K, V] { return m.e.eraseIterator(it) }

// Each calls fn for every (key, value) pair in ascending bucket order,
// stopping early if fn returns false.
func (m *Map[K, V]) Each(fn func(key K, value V) bool) {
	m.e.arr.iterate(func(_ int, s *slot[K, V]) bool {
		return fn(s.key, s.value)
	})
}
