package sparsehash

// engine is the hash table engine: it turns key operations into probes
// over a sparseArray, using policy for the probe's starting bucket and
// growth/rehash capacities. The policy is pluggable, and the table
// rehashes itself whenever the load or tombstone threshold is crossed.
type engine[K comparable, V any] struct {
	arr    *sparseArray[K, V]
	policy growthPolicy

	size       int
	tombstones int

	maxLoad         float64
	tombstoneFactor float64

	hashFunc HashFunc[K]
	equal    EqualFunc[K]

	emptyV V
}

// config collects Option values before engine construction so that
// invalid-argument errors are surfaced at configuration time, before
// any storage is allocated.
type config[K comparable, V any] struct {
	policy          growthPolicy
	hashFunc        HashFunc[K]
	equal           EqualFunc[K]
	maxLoad         float64
	tombstoneFactor float64
	blockSize       int
}

// Option configures a Map or Set at construction time.
type Option[K comparable, V any] func(*config[K, V])

// WithHashFunc overrides the default hasher.
func WithHashFunc[K comparable, V any](f HashFunc[K]) Option[K, V] {
	return func(c *config[K, V]) { c.hashFunc = f }
}

// WithEqual overrides the default (==) equality predicate, needed for
// key types whose comparability isn't the intended equality (e.g. a
// normalized-string wrapper).
func WithEqual[K comparable, V any](eq EqualFunc[K]) Option[K, V] {
	return func(c *config[K, V]) { c.equal = eq }
}

// WithGrowthPolicy overrides the default PowerOfTwoPolicy. The supplied
// policy is cloned, so the same template value may be reused across
// multiple New calls.
func WithGrowthPolicy[K comparable, V any](p growthPolicy) Option[K, V] {
	return func(c *config[K, V]) { c.policy = p.clone() }
}

// WithMaxLoadFactor overrides the default 0.5 max load factor. Must lie
// in (0, 1); otherwise New/NewSet return ErrInvalidArgument.
func WithMaxLoadFactor[K comparable, V any](f float64) Option[K, V] {
	return func(c *config[K, V]) { c.maxLoad = f }
}

// WithTombstoneFactor overrides the default 0.125 tombstone-to-capacity
// threshold that triggers an in-place compaction.
func WithTombstoneFactor[K comparable, V any](f float64) Option[K, V] {
	return func(c *config[K, V]) { c.tombstoneFactor = f }
}

// WithBlockSize overrides the dense-array growth block size S. Must be
// one of {2, 4, 8}.
func WithBlockSize[K comparable, V any](s int) Option[K, V] {
	return func(c *config[K, V]) { c.blockSize = s }
}

func newEngine[K comparable, V any](capacity int, opts ...Option[K, V]) (*engine[K, V], error) {
	c := config[K, V]{
		maxLoad:         0.5,
		tombstoneFactor: 0.125,
		blockSize:       4,
	}

	for _, opt := range opts {
		opt(&c)
	}

	if c.maxLoad <= 0 || c.maxLoad >= 1.0 {
		return nil, ErrInvalidArgument
	}
	if c.tombstoneFactor <= 0 || c.tombstoneFactor >= 1.0 {
		return nil, ErrInvalidArgument
	}
	if c.blockSize != 2 && c.blockSize != 4 && c.blockSize != 8 {
		return nil, ErrInvalidArgument
	}

	if c.policy == nil {
		c.policy = NewPowerOfTwoPolicy()
	}
	if c.hashFunc == nil {
		c.hashFunc = MakeDefaultHashFunc[K]()
	}
	if c.equal == nil {
		c.equal = defaultEqual[K]
	}

	bucketCount := c.policy.init(capacity)

	return &engine[K, V]{
		arr:             newSparseArray[K, V](bucketCount, c.blockSize),
		policy:          c.policy,
		maxLoad:         c.maxLoad,
		tombstoneFactor: c.tombstoneFactor,
		hashFunc:        c.hashFunc,
		equal:           c.equal,
	}, nil
}

func (e *engine[K, V]) loadThreshold() int {
	return int(e.maxLoad * float64(e.arr.bucketCount))
}

func (e *engine[K, V]) tombstoneThreshold() int {
	return int(e.tombstoneFactor * float64(e.arr.bucketCount))
}

// find runs the quadratic probe sequence and returns the bucket holding
// key, if any.
func (e *engine[K, V]) find(key K, hash uint64) (int, bool) {
	n := e.arr.bucketCount
	frag := hashFragment(hash)
	b := e.policy.bucketFor(hash)

	for step := 0; ; {
		switch {
		case e.arr.isEmpty(b):
			return 0, false
		case e.arr.has(b):
			s := e.arr.get(b)
			if s.hfrag == frag && e.equal(s.key, key) {
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

func (e *engine[K, V]) get(key K) (V, bool) {
	hash := e.hashFunc(key)
	b, ok := e.find(key, hash)
	if !ok {
		return e.emptyV, false
	}

	return e.arr.get(b).value, true
}

// insert fails (returns ok=false) if key is already present, otherwise
// occupies the first tombstone seen along the probe chain or, failing
// that, the terminating empty bucket.
func (e *engine[K, V]) insert(key K, value V) (bool, error) {
	hash := e.hashFunc(key)
	n := e.arr.bucketCount
	frag := hashFragment(hash)
	b := e.policy.bucketFor(hash)

	firstTombstone := -1

	for step := 0; ; {
		switch {
		case e.arr.isEmpty(b):
			target := b
			if firstTombstone >= 0 {
				target = firstTombstone
			}

			if target == firstTombstone {
				e.arr.setDeleted(target, key, value, frag)
				e.tombstones--
			} else {
				e.arr.setEmpty(target, key, value, frag)
			}
			e.size++

			return true, e.afterInsert()

		case e.arr.has(b):
			s := e.arr.get(b)
			if s.hfrag == frag && e.equal(s.key, key) {
				return false, nil
			}

		default: // tombstone
			if firstTombstone < 0 {
				firstTombstone = b
			}
		}

		step++
		if step > n {
			panic("sparsehash: probe sequence exceeded bucket count")
		}
		b = (b + step) % n
	}
}

// set implements the map-assignment variant: overwrites the value if
// key is already present instead of failing.
func (e *engine[K, V]) set(key K, value V) error {
	hash := e.hashFunc(key)
	n := e.arr.bucketCount
	frag := hashFragment(hash)
	b := e.policy.bucketFor(hash)

	firstTombstone := -1

	for step := 0; ; {
		switch {
		case e.arr.isEmpty(b):
			target := b
			if firstTombstone >= 0 {
				target = firstTombstone
			}

			if target == firstTombstone {
				e.arr.setDeleted(target, key, value, frag)
				e.tombstones--
			} else {
				e.arr.setEmpty(target, key, value, frag)
			}
			e.size++

			return e.afterInsert()

		case e.arr.has(b):
			s := e.arr.get(b)
			if s.hfrag == frag && e.equal(s.key, key) {
				s.value = value
				return nil
			}

		default: // tombstone
			if firstTombstone < 0 {
				firstTombstone = b
			}
		}

		step++
		if step > n {
			panic("sparsehash: probe sequence exceeded bucket count")
		}
		b = (b + step) % n
	}
}

// delete tombstones the bucket holding key, leaving the dense slot in
// place so neighbouring probe chains stay intact.
func (e *engine[K, V]) delete(key K) bool {
	hash := e.hashFunc(key)
	b, ok := e.find(key, hash)
	if !ok {
		return false
	}

	e.arr.unset(b)
	e.size--
	e.tombstones++

	return true
}

// afterInsert grows the table when size+tombstones exceeds the load
// threshold, else compacts in place (same capacity) when tombstones
// alone exceed their own threshold. Growing and compacting are mutually
// exclusive per insertion.
func (e *engine[K, V]) afterInsert() error {
	switch {
	case e.size+e.tombstones > e.loadThreshold():
		next, err := e.policy.next()
		if err != nil {
			return err
		}

		e.rehashTo(next)

	case e.tombstones > e.tombstoneThreshold():
		e.compact()
	}

	return nil
}

// insertFresh places (key, value) into arr via policy's probe sequence
// without any tombstone bookkeeping, since arr is known to contain no
// tombstones (used on the rehash fast path).
func insertFresh[K comparable, V any](arr *sparseArray[K, V], policy growthPolicy, key K, value V, hash uint64) {
	n := arr.bucketCount
	frag := hashFragment(hash)
	b := policy.bucketFor(hash)

	for step := 0; ; {
		if arr.isEmpty(b) {
			arr.setEmpty(b, key, value, frag)
			return
		}

		step++
		if step > n {
			panic("sparsehash: probe sequence exceeded bucket count")
		}
		b = (b + step) % n
	}
}

// rehashTo allocates a fresh sparse array at newCap and relocates every
// occupied entry into it. The key's hash is recomputed rather than
// reused from the cached fragment, since the cached fragment is a
// 32-bit equality prefilter, not a full hash — the policy needs the
// full hash to compute the new bucket.
func (e *engine[K, V]) rehashTo(newCap int) {
	newArr := newSparseArray[K, V](newCap, e.arr.blockSize)

	e.arr.iterate(func(_ int, s *slot[K, V]) bool {
		hash := e.hashFunc(s.key)
		insertFresh(newArr, e.policy, s.key, s.value, hash)
		return true
	})

	e.arr = newArr
	e.tombstones = 0
}

// compact performs a same-capacity tombstone sweep: an alternative to
// growing when only the tombstone threshold (not the load threshold) is
// exceeded.
func (e *engine[K, V]) compact() {
	if e.tombstones == 0 {
		return
	}

	e.rehashTo(e.arr.bucketCount)
}

// clear empties the engine without releasing the current bucket array
// or changing the bucket count.
func (e *engine[K, V]) clear() {
	e.arr.reset()
	e.size = 0
	e.tombstones = 0
}

// reserve ensures n more entries (size+n in total) fit under the load
// threshold without an intermediate rehash.
func (e *engine[K, V]) reserve(n int) error {
	if n <= 0 {
		return nil
	}

	needed := e.size + n
	minBuckets := int(float64(needed)/e.maxLoad) + 1
	if minBuckets <= e.arr.bucketCount {
		return nil
	}

	return e.rehash(minBuckets)
}

// rehash re-derives a capacity from the policy for at least n buckets
// (never below what's required to hold the current size under the load
// threshold) and relocates every entry.
func (e *engine[K, V]) rehash(minBuckets int) error {
	requiredForSize := int(float64(e.size)/e.maxLoad) + 1
	if minBuckets < requiredForSize {
		minBuckets = requiredForSize
	}

	newCap := e.policy.init(minBuckets)
	e.rehashTo(newCap)

	return nil
}

// maxProbeLength scans every occupied bucket and returns the longest
// probe chain observed in locating it — a diagnostic for comparing
// growth-policy probe behavior under load, not part of the hot path.
func (e *engine[K, V]) maxProbeLength() int {
	max := 0

	e.arr.iterate(func(bucket int, s *slot[K, V]) bool {
		hash := e.hashFunc(s.key)
		n := e.arr.bucketCount
		b := e.policy.bucketFor(hash)

		length := 0
		for step := 0; b != bucket; {
			step++
			b = (b + step) % n
			length++

			if step > n {
				break
			}
		}

		if length > max {
			max = length
		}

		return true
	})

	return max
}
