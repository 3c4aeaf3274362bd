package sparsehash

import "unsafe"

// CapacityFromSize estimates the bucket count that fits within size
// bytes of sparse-group overhead. Since a group's dense array grows
// independently of its bitmaps, this estimate charges each group for
// only its first growth block (blockSize slots). A group whose dense
// array grows beyond that block costs more, so once groups fill up,
// size bytes address fewer buckets than the estimate returns.
func CapacityFromSize[K comparable, V any](size uintptr, blockSize int) int {
	var g group[K, V]
	perGroup := unsafe.Sizeof(g) + uintptr(blockSize)*unsafe.Sizeof(slot[K, V]{})

	if perGroup == 0 {
		return 0
	}

	numGroups := size / perGroup

	return int(numGroups) * groupSize
}
