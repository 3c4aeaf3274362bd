package sparsehash

// findHeterogeneous runs the same quadratic probe as engine.find but
// tests occupied entries with an arbitrary match callback instead of
// engine's own equal/hashFunc, so the lookup key's type need not match
// the stored key type K. hash must come from the same hash space engine
// uses for K.
func findHeterogeneous[K comparable, V any](e *engine[K, V], hash uint64, match func(K) bool) (int, bool) {
	n := e.arr.bucketCount
	frag := hashFragment(hash)
	b := e.policy.bucketFor(hash)

	for step := 0; ; {
		switch {
		case e.arr.isEmpty(b):
			return 0, false
		case e.arr.has(b):
			s := e.arr.get(b)
			if s.hfrag == frag && match(s.key) {
				return b, true
			}
		}

		step++
		if step > n {
			panic("sparsehash: probe sequence exceeded bucket count")
		}
		b = (b + step) % n
	}
}

// FindAny implements heterogeneous ("transparent") lookup as a free
// function rather than a method, since Go methods cannot introduce a
// new type parameter (L) beyond the receiver's own. Callers supply the
// lookup-type hasher and a cross-type equality predicate explicitly.
func FindAny[K comparable, V any, L any](m *Map[K, V], key L, hashFn func(L) uint64, eq func(K, L) bool) (V, bool) {
	b, ok := findHeterogeneous(m.e, hashFn(key), func(k K) bool { return eq(k, key) })
	if !ok {
		var zero V
		return zero, false
	}

	return m.e.arr.get(b).value, true
}

// EraseAny is FindAny's erasing counterpart, tombstoning the matched
// bucket and returning whether a match was found.
func EraseAny[K comparable, V any, L any](m *Map[K, V], key L, hashFn func(L) uint64, eq func(K, L) bool) bool {
	b, ok := findHeterogeneous(m.e, hashFn(key), func(k K) bool { return eq(k, key) })
	if !ok {
		return false
	}

	m.e.arr.unset(b)
	m.e.size--
	m.e.tombstones++

	return true
}

// HasAny is FindAny's set-variant counterpart.
func HasAny[K comparable, L any](s *Set[K], key L, hashFn func(L) uint64, eq func(K, L) bool) bool {
	_, ok := findHeterogeneous(s.e, hashFn(key), func(k K) bool { return eq(k, key) })
	return ok
}
