package sparsehash

import "math/bits"

// growthPolicy is the pluggable growth strategy: a value object that
// chooses an initial capacity, maps a hash to a bucket index, and
// produces the next larger capacity on demand.
type growthPolicy interface {
	// init chooses and records the actual capacity for a requested
	// minimum, returning it.
	init(minBucketCount int) int

	// bucketFor maps a hash to a bucket index in [0, bucketCount). Must
	// be pure and fast.
	bucketFor(hash uint64) int

	// next returns the next larger capacity this policy will support,
	// recording it as current. Returns ErrMaxCapacityExceeded if the
	// policy has no more room to grow.
	next() (int, error)

	// bucketCount returns the capacity the policy currently reports.
	bucketCount() int

	// clone returns an independent copy of the policy in its current
	// state, used when a Map/Set is constructed with a policy template
	// via WithGrowthPolicy (each instance must own its own mutable
	// state).
	clone() growthPolicy
}

// nextPowerOf2 rounds v up to the next power of two.
func nextPowerOf2(v int) int {
	if v <= 1 {
		return 1
	}

	return 1 << bits.Len(uint(v-1))
}

// PowerOfTwoPolicy is the fastest growth policy: capacity rounds up to
// the next power of two, bucketFor masks the low bits, and next
// doubles.
type PowerOfTwoPolicy struct {
	n    uint64
	mask uint64
}

func NewPowerOfTwoPolicy() *PowerOfTwoPolicy { return &PowerOfTwoPolicy{} }

func (p *PowerOfTwoPolicy) init(minBucketCount int) int {
	n := nextPowerOf2(minBucketCount)
	p.n = uint64(n)
	p.mask = uint64(n - 1)

	return n
}

func (p *PowerOfTwoPolicy) bucketFor(hash uint64) int {
	return int(hash & p.mask)
}

func (p *PowerOfTwoPolicy) next() (int, error) {
	if p.n > 1<<62 {
		return 0, ErrMaxCapacityExceeded
	}

	p.n *= 2
	p.mask = p.n - 1

	return int(p.n), nil
}

func (p *PowerOfTwoPolicy) bucketCount() int { return int(p.n) }

func (p *PowerOfTwoPolicy) clone() growthPolicy {
	cp := *p
	return &cp
}

// primeTable is the classic prime-modulo rehash sequence used by SGI
// STL's hashtable (later adopted by libstdc++'s unordered_map growth
// policy): each entry is roughly double the previous and all are prime,
// which spreads low-entropy hashes across buckets far better than a
// power-of-two mask does.
var primeTable = [...]int{
	53, 97, 193, 389, 769, 1543, 3079, 6151, 12289, 24593,
	49157, 98317, 196613, 393241, 786433, 1572869, 3145739,
	6291469, 12582917, 25165843, 50331653, 100663319, 201326611,
	402653189, 805306457, 1610612741,
}

// primeMod applies bucketFor's modulo against primeTable[i], dispatching
// through a switch so the compiler can specialize each case's division
// by its constant divisor into magic-number multiplication. Indices
// beyond the switch's range (the table's tail) fall back to a plain
// runtime modulo.
func primeMod(h uint64, i int) uint64 {
	switch i {
	case 0:
		return h % 53
	case 1:
		return h % 97
	case 2:
		return h % 193
	case 3:
		return h % 389
	case 4:
		return h % 769
	case 5:
		return h % 1543
	case 6:
		return h % 3079
	case 7:
		return h % 6151
	case 8:
		return h % 12289
	case 9:
		return h % 24593
	case 10:
		return h % 49157
	case 11:
		return h % 98317
	case 12:
		return h % 196613
	case 13:
		return h % 393241
	case 14:
		return h % 786433
	case 15:
		return h % 1572869
	default:
		return h % uint64(primeTable[i])
	}
}

// PrimePolicy draws capacity from primeTable; bucketFor is h mod P[i].
// Prime moduli avoid the correlated-low-bits pathology PowerOfTwoPolicy
// is exposed to, at the cost of a division per probe.
type PrimePolicy struct {
	idx int
	n   int
}

func NewPrimePolicy() *PrimePolicy { return &PrimePolicy{} }

func (p *PrimePolicy) init(minBucketCount int) int {
	for i, v := range primeTable {
		if v >= minBucketCount {
			p.idx = i
			p.n = v
			return v
		}
	}

	// Requested minimum exceeds the table: fall back to the largest
	// tabulated prime; next() will then report ErrMaxCapacityExceeded
	// immediately, which is honest given the table is exhausted.
	p.idx = len(primeTable) - 1
	p.n = primeTable[p.idx]

	return p.n
}

func (p *PrimePolicy) bucketFor(hash uint64) int {
	return int(primeMod(hash, p.idx))
}

func (p *PrimePolicy) next() (int, error) {
	if p.idx+1 >= len(primeTable) {
		return 0, ErrMaxCapacityExceeded
	}

	p.idx++
	p.n = primeTable[p.idx]

	return p.n, nil
}

func (p *PrimePolicy) bucketCount() int { return p.n }

func (p *PrimePolicy) clone() growthPolicy {
	cp := *p
	return &cp
}

// FactorPolicy grows capacity by an arbitrary user-specified
// multiplicative factor using generic runtime modulo. Slowest of the
// three but not restricted to powers of two or a fixed table — useful
// when the caller wants fine control over the growth curve (e.g. a
// small factor to minimize over-allocation).
type FactorPolicy struct {
	factor float64
	n      int
}

// NewFactorPolicy builds a FactorPolicy that multiplies capacity by
// factor on every growth step. factor must be > 1.0.
func NewFactorPolicy(factor float64) *FactorPolicy {
	if factor <= 1.0 {
		factor = 1.5
	}

	return &FactorPolicy{factor: factor}
}

func (p *FactorPolicy) init(minBucketCount int) int {
	n := max(minBucketCount, groupSize)
	p.n = n

	return n
}

func (p *FactorPolicy) bucketFor(hash uint64) int {
	return int(hash % uint64(p.n))
}

func (p *FactorPolicy) next() (int, error) {
	next := int(float64(p.n) * p.factor)
	if next <= p.n {
		next = p.n + 1
	}
	if next <= 0 {
		return 0, ErrMaxCapacityExceeded
	}

	p.n = next

	return p.n, nil
}

func (p *FactorPolicy) bucketCount() int { return p.n }

func (p *FactorPolicy) clone() growthPolicy {
	cp := *p
	return &cp
}
