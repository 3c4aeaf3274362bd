package sparsehash

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Serialize/DeserializeMap persist a Map's contents using standard
// io.Writer/io.Reader streams rather than a bespoke callback type, built
// on encoding/binary the same way encoding/gob itself is.

const (
	policyKindPowerOfTwo byte = iota
	policyKindPrime
	policyKindFactor
)

func policyKind(p growthPolicy) (byte, error) {
	switch p.(type) {
	case *PowerOfTwoPolicy:
		return policyKindPowerOfTwo, nil
	case *PrimePolicy:
		return policyKindPrime, nil
	case *FactorPolicy:
		return policyKindFactor, nil
	default:
		return 0, fmt.Errorf("sparsehash: %w: unsupported growth policy type %T", ErrDeserializationMismatch, p)
	}
}

func writePolicyState(w io.Writer, p growthPolicy) error {
	switch v := p.(type) {
	case *PowerOfTwoPolicy:
		return binary.Write(w, binary.LittleEndian, v.n)
	case *PrimePolicy:
		return binary.Write(w, binary.LittleEndian, int64(v.idx))
	case *FactorPolicy:
		if err := binary.Write(w, binary.LittleEndian, v.factor); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, int64(v.n))
	default:
		return fmt.Errorf("sparsehash: %w: unsupported growth policy type %T", ErrDeserializationMismatch, p)
	}
}

func readPolicy(r io.Reader, kind byte) (growthPolicy, error) {
	switch kind {
	case policyKindPowerOfTwo:
		var n uint64
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, err
		}
		return &PowerOfTwoPolicy{n: n, mask: n - 1}, nil

	case policyKindPrime:
		var idx64 int64
		if err := binary.Read(r, binary.LittleEndian, &idx64); err != nil {
			return nil, err
		}
		idx := int(idx64)
		if idx < 0 || idx >= len(primeTable) {
			return nil, fmt.Errorf("sparsehash: %w: prime index %d out of range", ErrDeserializationMismatch, idx)
		}
		return &PrimePolicy{idx: idx, n: primeTable[idx]}, nil

	case policyKindFactor:
		var factor float64
		if err := binary.Read(r, binary.LittleEndian, &factor); err != nil {
			return nil, err
		}
		var n64 int64
		if err := binary.Read(r, binary.LittleEndian, &n64); err != nil {
			return nil, err
		}
		return &FactorPolicy{factor: factor, n: int(n64)}, nil

	default:
		return nil, fmt.Errorf("sparsehash: %w: unknown policy kind %d", ErrDeserializationMismatch, kind)
	}
}

// header is the fixed-layout preamble: bucket_count, size,
// tombstone_count, max load factor, then growth-policy state.
type header struct {
	BucketCount int64
	Size        int64
	Tombstones  int64
	MaxLoad     float64
}

// Serialize writes the map's header followed by every occupied
// (bucket_index, key, value) triple in ascending bucket order, using
// encodeKey/encodeValue to turn each entry's key and value into bytes.
func (m *Map[K, V]) Serialize(w io.Writer, encodeKey func(io.Writer, K) error, encodeValue func(io.Writer, V) error) error {
	return m.e.serialize(w, encodeKey, encodeValue)
}

func (e *engine[K, V]) serialize(w io.Writer, encodeKey func(io.Writer, K) error, encodeValue func(io.Writer, V) error) error {
	h := header{
		BucketCount: int64(e.arr.bucketCount),
		Size:        int64(e.size),
		Tombstones:  int64(e.tombstones),
		MaxLoad:     e.maxLoad,
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return err
	}

	kind, err := policyKind(e.policy)
	if err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, kind); err != nil {
		return err
	}
	if err := writePolicyState(w, e.policy); err != nil {
		return err
	}

	var walkErr error
	e.arr.iterate(func(bucket int, s *slot[K, V]) bool {
		if err := binary.Write(w, binary.LittleEndian, int64(bucket)); err != nil {
			walkErr = err
			return false
		}
		if err := encodeKey(w, s.key); err != nil {
			walkErr = err
			return false
		}
		if err := encodeValue(w, s.value); err != nil {
			walkErr = err
			return false
		}
		return true
	})

	return walkErr
}

// DeserializeMap restores a Map written by Serialize into a fresh
// instance. Restore replays inserts by the persisted bucket index
// directly, without probing, relying on the restored growth-policy
// state to reproduce the same bucket_count; a mismatch between the
// persisted and reproduced bucket_count is reported as
// ErrDeserializationMismatch.
//
// hashFunc and equal must be the same HashFunc and EqualFunc the
// original Map was built with (the ones passed to WithHashFunc and
// WithEqual, or MakeDefaultHashFunc/defaultEqual if neither option was
// used). Placing an entry by its persisted bucket index only works if
// later probes that start from policy.bucketFor(hashFunc(key)) land on
// that same bucket, which requires hashFunc to hash each key exactly
// the way it did when the map was serialized; a freshly constructed
// default hasher picks its own independent seed and will not agree.
func DeserializeMap[K comparable, V any](r io.Reader, decodeKey func(io.Reader) (K, error), decodeValue func(io.Reader) (V, error), hashFunc HashFunc[K], equal EqualFunc[K]) (*Map[K, V], error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, err
	}

	var kind byte
	if err := binary.Read(r, binary.LittleEndian, &kind); err != nil {
		return nil, err
	}

	policy, err := readPolicy(r, kind)
	if err != nil {
		return nil, err
	}

	if policy.bucketCount() != int(h.BucketCount) {
		return nil, fmt.Errorf("sparsehash: %w: policy reproduced bucket_count %d, want %d",
			ErrDeserializationMismatch, policy.bucketCount(), h.BucketCount)
	}

	arr := newSparseArray[K, V](int(h.BucketCount), 4)

	for i := int64(0); i < h.Size; i++ {
		var bucket int64
		if err := binary.Read(r, binary.LittleEndian, &bucket); err != nil {
			return nil, err
		}

		key, err := decodeKey(r)
		if err != nil {
			return nil, err
		}

		value, err := decodeValue(r)
		if err != nil {
			return nil, err
		}

		arr.setEmpty(int(bucket), key, value, 0)
	}

	e := &engine[K, V]{
		arr:             arr,
		policy:          policy,
		size:            int(h.Size),
		tombstones:      0,
		maxLoad:         h.MaxLoad,
		tombstoneFactor: 0.125,
		hashFunc:        hashFunc,
		equal:           equal,
	}

	// Re-derive each slot's cached hash fragment rather than persisting
	// it, the same way a rehash would recompute it.
	e.arr.iterate(func(_ int, s *slot[K, V]) bool {
		s.hfrag = hashFragment(e.hashFunc(s.key))
		return true
	})

	return &Map[K, V]{e: e}, nil
}
