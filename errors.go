package sparsehash

import "errors"

// Sentinel errors, checkable via errors.Is.
var (
	// ErrAllocationFailure names a failed dense-array allocation. No
	// operation in this package returns it; it is exported for API
	// completeness.
	ErrAllocationFailure = errors.New("sparsehash: allocation failure")

	// ErrMaxCapacityExceeded is returned by a growth policy's Next when
	// it has no larger capacity to offer.
	ErrMaxCapacityExceeded = errors.New("sparsehash: growth policy has no further capacity")

	// ErrInvalidArgument is returned at configuration time, e.g. a max
	// load factor outside (0, 1).
	ErrInvalidArgument = errors.New("sparsehash: invalid argument")

	// ErrDeserializationMismatch is returned when restored growth-policy
	// state cannot reproduce the persisted bucket count.
	ErrDeserializationMismatch = errors.New("sparsehash: deserialization mismatch")

	// ErrKeyNotFound names a lookup of an absent key. No operation in
	// this package returns it: Get, Contains and the iterator helpers
	// report absence with a bool or an invalid iterator instead.
	ErrKeyNotFound = errors.New("sparsehash: key not found")
)
