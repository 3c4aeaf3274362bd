package sparsehash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterator_EmptyMapEndsImmediately(t *testing.T) {
	m, err := New[int, int](16)
	require.NoError(t, err)

	it := m.Begin()
	require.False(t, it.Valid())
	require.Equal(t, m.End(), it)
}

func TestIterator_VisitsEveryEntry(t *testing.T) {
	// Iteration must visit every live entry exactly once, regardless of
	// probe-chain order.
	m, err := New[int, int](16)
	require.NoError(t, err)

	want := map[int]int{}
	for i := range 20 {
		require.NoError(t, m.Set(i, i*7))
		want[i] = i * 7
	}

	got := map[int]int{}
	for it := m.Begin(); it.Valid(); it.Next() {
		got[it.Key()] = it.Value()
	}

	require.Equal(t, want, got)
}

func TestIterator_SetValueMutatesInPlace(t *testing.T) {
	m, err := New[string, int](16)
	require.NoError(t, err)

	require.NoError(t, m.Set("a", 1))

	it := m.Begin()
	require.True(t, it.Valid())
	it.SetValue(99)

	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 99, v)
}

func TestIterator_EraseAdvancesAndSkipsTombstone(t *testing.T) {
	// Iteration follows bucket order, so an identity hash puts key i in
	// bucket i and makes the visiting order 0, 1, 2, ...
	identity := func(k int) uint64 { return uint64(k) }
	m, err := New[int, int](16, WithHashFunc[int, int](identity))
	require.NoError(t, err)

	for i := range 5 {
		require.NoError(t, m.Set(i, i))
	}

	it := m.Begin()
	require.Equal(t, 0, it.Key())

	it = m.Erase(it)
	require.True(t, it.Valid())
	require.Equal(t, 1, it.Key())

	_, ok := m.Get(0)
	require.False(t, ok)
	require.Equal(t, 4, m.Size())
}

func TestIterator_EraseLastElementReachesEnd(t *testing.T) {
	m, err := New[int, int](16)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 1))

	it := m.Begin()
	it = m.Erase(it)
	require.False(t, it.Valid())
}
