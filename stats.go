package sparsehash

// Stats reports the internal counters useful for diagnosing load and
// fragmentation: Size, Tombstones, the two tombstone ratios, plus
// BucketCount, GroupCount, and EffectiveCapacity (the load threshold
// below which insert never triggers a rehash).
type Stats struct {
	Size                    int
	Tombstones              int
	BucketCount             int
	GroupCount              int
	EffectiveCapacity       int
	TombstonesCapacityRatio float32
	TombstonesSizeRatio     float32
}

func (e *engine[K, V]) stats() Stats {
	var tombstonesCapacityRatio, tombstonesSizeRatio float32

	if e.arr.bucketCount > 0 {
		tombstonesCapacityRatio = float32(e.tombstones) / float32(e.arr.bucketCount)
	}
	if e.size > 0 {
		tombstonesSizeRatio = float32(e.tombstones) / float32(e.size)
	}

	return Stats{
		Size:                    e.size,
		Tombstones:              e.tombstones,
		BucketCount:             e.arr.bucketCount,
		GroupCount:              len(e.arr.groups),
		EffectiveCapacity:       e.loadThreshold(),
		TombstonesCapacityRatio: tombstonesCapacityRatio,
		TombstonesSizeRatio:     tombstonesSizeRatio,
	}
}

func (e *engine[K, V]) loadFactor() float64 {
	if e.arr.bucketCount == 0 {
		return 0
	}

	return float64(e.size) / float64(e.arr.bucketCount)
}
