package ecs

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// SparseSet is a per-component-type store: a map from entity id to a value
// of T with O(1) bind/unbind/lookup and contiguous dense/data arrays for
// cache-friendly traversal.
//
// sparse is indexed by entity id; each cell is either NullID[K]() or a
// dense index. dense holds the ids present in the set, in insertion order
// except where Unbind has swap-moved the last id into a vacated slot; data
// is parallel to dense. The set is a passive container — it has no
// internal state machine beyond the sparse<->dense bijection.
type SparseSet[K constraints.Unsigned, T any] struct {
	sparse []K
	dense  []K
	data   []T
}

// NewSparseSet returns an empty set.
func NewSparseSet[K constraints.Unsigned, T any]() *SparseSet[K, T] {
	return &SparseSet[K, T]{}
}

// Has reports whether id is bound in the set.
func (s *SparseSet[K, T]) Has(id K) bool {
	null := NullID[K]()
	if id == null || int(id) >= len(s.sparse) {
		return false
	}
	return s.sparse[id] != null
}

// Get returns a borrow of the value bound to id. The pointer is valid until
// the next mutating call (Bind/Unbind) on this set.
func (s *SparseSet[K, T]) Get(id K) (*T, bool) {
	if !s.Has(id) {
		return nil, false
	}
	return &s.data[s.sparse[id]], true
}

// grow extends sparse so index `to-1` is addressable, filling every new
// cell with the null sentinel. It over-allocates to the slice's new
// capacity (not just `to`) so repeated growth is amortized O(1).
func (s *SparseSet[K, T]) grow(to int) {
	null := NullID[K]()
	if to <= len(s.sparse) {
		return
	}
	old := len(s.sparse)
	s.sparse = slices.Grow(s.sparse, to-old)
	s.sparse = s.sparse[:cap(s.sparse)]
	for i := old; i < len(s.sparse); i++ {
		s.sparse[i] = null
	}
}

// Bind inserts or overwrites the value bound to id. Fails with
// ErrInvalidKey when id is the null sentinel; growth (if needed) happens
// before any association is recorded, so a failed allocation (fatal,
// propagated as a panic from the runtime) never leaves a partial mutation
// behind.
func (s *SparseSet[K, T]) Bind(id K, value T) error {
	null := NullID[K]()
	if id == null {
		return ErrInvalidKey
	}

	if int(id) >= len(s.sparse) {
		s.grow(int(id) + 1)
	}

	if s.Has(id) {
		s.data[s.sparse[id]] = value
		return nil
	}

	s.dense = append(s.dense, id)
	s.data = append(s.data, value)
	s.sparse[id] = K(len(s.dense) - 1)
	return nil
}

// Unbind removes id's value and returns it to the caller, swap-removing
// the dense/data back into place: swap the removed slot with the last
// element, fix the moved element's sparse cell, then pop. The sparse-cell
// fix happens before the pop so the bijection holds even when the removed
// element was already last.
func (s *SparseSet[K, T]) Unbind(id K) (T, bool) {
	var zero T
	if !s.Has(id) {
		return zero, false
	}

	i := s.sparse[id]
	last := K(len(s.dense) - 1)

	s.dense[i], s.dense[last] = s.dense[last], s.dense[i]
	s.data[i], s.data[last] = s.data[last], s.data[i]
	s.sparse[s.dense[i]] = i
	s.sparse[id] = NullID[K]()

	v := s.data[last]
	s.data = s.data[:last]
	s.dense = s.dense[:last]
	return v, true
}

// Purge is the erased-interface equivalent of Unbind, discarding the value.
// A no-op for an id that isn't bound.
func (s *SparseSet[K, T]) Purge(id K) {
	s.Unbind(id)
}

// Len returns the number of bound entities.
func (s *SparseSet[K, T]) Len() int {
	return len(s.dense)
}

// Dense returns the raw dense id slice, in insertion order as modified by
// Unbind's swap-removes. Callers must not retain it across a mutating call.
func (s *SparseSet[K, T]) Dense() []K {
	return s.dense
}
