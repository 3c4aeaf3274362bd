package sparsehash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_Basic(t *testing.T) {
	s, err := NewSet[string](16)
	require.NoError(t, err)

	isNew, err := s.Put("foo")
	require.NoError(t, err)
	assert.True(t, isNew)

	assert.True(t, s.Has("foo"))

	isNew, err = s.Put("foo")
	require.NoError(t, err)
	assert.False(t, isNew)

	assert.False(t, s.Has("bar"))

	assert.True(t, s.Delete("foo"))
	assert.False(t, s.Has("foo"))
	assert.False(t, s.Delete("foo"))
}

func TestSet_Stats(t *testing.T) {
	s, err := NewSet[int](16)
	require.NoError(t, err)

	stats := s.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.Equal(t, 8, stats.EffectiveCapacity)

	for i := range 5 {
		_, err := s.Put(i)
		require.NoError(t, err)
	}

	assert.Equal(t, 5, s.Stats().Size)
}

func TestSet_Compact(t *testing.T) {
	s, err := NewSet[int](16, WithMaxLoadFactor[int, struct{}](0.9))
	require.NoError(t, err)

	for i := range 10 {
		_, err := s.Put(i)
		require.NoError(t, err)
	}

	for i := range 5 {
		require.True(t, s.Delete(i))
	}

	assert.Equal(t, 5, s.Stats().Tombstones)

	s.Compact()

	stats := s.Stats()
	assert.Equal(t, 0, stats.Tombstones)
	assert.Equal(t, 5, stats.Size)

	for i := 5; i < 10; i++ {
		assert.True(t, s.Has(i))
	}
}

func TestSet_Clear(t *testing.T) {
	s, err := NewSet[int](16)
	require.NoError(t, err)

	for i := range 5 {
		_, err := s.Put(i)
		require.NoError(t, err)
	}
	assert.Equal(t, 5, s.Stats().Size)

	s.Clear()

	assert.Equal(t, 0, s.Stats().Size)
	assert.False(t, s.Has(0))
}

func TestSet_WithHashFunc(t *testing.T) {
	customHash := func(k int) uint64 { return uint64(k * 31) }

	s, err := NewSet(16, WithHashFunc[int, struct{}](customHash))
	require.NoError(t, err)

	_, err = s.Put(1)
	require.NoError(t, err)
	assert.True(t, s.Has(1))
}

func TestSet_GrowthTriggers(t *testing.T) {
	s, err := NewSet[int](16)
	require.NoError(t, err)

	for i := range 9 {
		isNew, err := s.Put(i)
		require.NoError(t, err)
		require.True(t, isNew)
	}

	require.Equal(t, 32, s.BucketCount())
}

func TestSet_InvalidMaxLoadFactor(t *testing.T) {
	_, err := NewSet[int](16, WithMaxLoadFactor[int, struct{}](0))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSet_IterationCompleteness(t *testing.T) {
	s, err := NewSet[int](16)
	require.NoError(t, err)

	for i := range 1000 {
		_, err := s.Put(i)
		require.NoError(t, err)
	}

	seen := map[int]bool{}
	s.Each(func(key int) bool {
		seen[key] = true
		return true
	})

	require.Len(t, seen, 1000)
	for i := range 1000 {
		require.True(t, seen[i])
	}
}

func TestSet_EachStopsEarly(t *testing.T) {
	s, err := NewSet[int](16)
	require.NoError(t, err)

	for i := range 10 {
		_, err := s.Put(i)
		require.NoError(t, err)
	}

	count := 0
	s.Each(func(int) bool {
		count++
		return count < 3
	})

	require.Equal(t, 3, count)
}
