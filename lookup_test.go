package sparsehash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindAny_WithSharedHasher(t *testing.T) {
	shared := MakeDefaultHashFunc[string]()

	m, err := New[string, int](16, WithHashFunc[string, int](shared))
	require.NoError(t, err)
	require.NoError(t, m.Set("hello", 42))
	require.NoError(t, m.Set("world", 7))

	lookupHash := func(b []byte) uint64 { return shared(string(b)) }
	eq := func(k string, b []byte) bool { return k == string(b) }

	v, ok := FindAny[string, int, []byte](m, []byte("hello"), lookupHash, eq)
	require.True(t, ok)
	require.Equal(t, 42, v)

	_, ok = FindAny[string, int, []byte](m, []byte("missing"), lookupHash, eq)
	require.False(t, ok)
}

func TestEraseAny_RemovesMatchedEntry(t *testing.T) {
	shared := MakeDefaultHashFunc[string]()

	m, err := New[string, int](16, WithHashFunc[string, int](shared))
	require.NoError(t, err)
	require.NoError(t, m.Set("hello", 42))

	lookupHash := func(b []byte) uint64 { return shared(string(b)) }
	eq := func(k string, b []byte) bool { return k == string(b) }

	require.True(t, EraseAny[string, int, []byte](m, []byte("hello"), lookupHash, eq))
	require.False(t, m.Contains("hello"))
	require.False(t, EraseAny[string, int, []byte](m, []byte("hello"), lookupHash, eq))
}

func TestHasAny_SetVariant(t *testing.T) {
	shared := MakeDefaultHashFunc[string]()

	s, err := NewSet[string](16, WithHashFunc[string, struct{}](shared))
	require.NoError(t, err)
	_, err = s.Put("foo")
	require.NoError(t, err)

	lookupHash := func(b []byte) uint64 { return shared(string(b)) }
	eq := func(k string, b []byte) bool { return k == string(b) }

	require.True(t, HasAny[string, []byte](s, []byte("foo"), lookupHash, eq))
	require.False(t, HasAny[string, []byte](s, []byte("bar"), lookupHash, eq))
}
