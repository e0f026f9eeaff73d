package ecs

import "golang.org/x/exp/constraints"

// NullID returns the reserved sentinel value for id type K: the all-ones
// bit pattern, i.e. 2^W-1 for a W-bit unsigned K. No live entity ever holds
// this value.
func NullID[K constraints.Unsigned]() K {
	return ^K(0)
}

// EntityManager allocates entity ids of width K and recycles killed ids
// via an implicit free-list embedded in entities itself: for a live id e,
// entities[e] == e; for a dead slot, entities[e] holds the next dead slot
// (or NullID[K]() if it ends the chain). head is the most recently killed
// id, or NullID[K]() when the free-list is empty. Recycling is therefore
// LIFO.
type EntityManager[K constraints.Unsigned] struct {
	entities []K
	head     K
}

// NewEntityManager returns an empty allocator.
func NewEntityManager[K constraints.Unsigned]() *EntityManager[K] {
	return &EntityManager[K]{head: NullID[K]()}
}

// Create allocates a fresh id, preferring the most recently killed one.
// Panics if the id space is exhausted — this is the one fatal, unrecoverable
// condition the allocator can hit.
func (em *EntityManager[K]) Create() K {
	null := NullID[K]()
	if em.head == null {
		id := K(len(em.entities))
		if id == null {
			panic("ecs: entity id space exhausted")
		}
		em.entities = append(em.entities, id)
		return id
	}

	id := em.head
	em.head = em.entities[id]
	em.entities[id] = id
	return id
}

// Alive reports whether id is a currently live entity.
func (em *EntityManager[K]) Alive(id K) bool {
	null := NullID[K]()
	return id != null && int(id) < len(em.entities) && em.entities[id] == id
}

// Kill recycles id. No-op if id is not alive.
func (em *EntityManager[K]) Kill(id K) bool {
	if !em.Alive(id) {
		return false
	}
	em.entities[id] = em.head
	em.head = id
	return true
}

// Len returns the number of ids ever allocated (live + recycled), not the
// live count.
func (em *EntityManager[K]) Len() int {
	return len(em.entities)
}
