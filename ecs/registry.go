package ecs

import (
	"reflect"
	"sort"

	"golang.org/x/exp/constraints"
)

// erasedStore is the type-independent handle the registry holds one of per
// component type ever bound, so a killed entity's components can be purged
// across every store without the registry knowing their concrete types.
type erasedStore[K constraints.Unsigned] interface {
	purge(K)
	len() int
	sortedIDs() []K
}

type typedStore[K constraints.Unsigned, T any] struct {
	set *SparseSet[K, T]
}

func (t *typedStore[K, T]) purge(id K) { t.set.Unbind(id) }
func (t *typedStore[K, T]) len() int   { return t.set.Len() }

func (t *typedStore[K, T]) sortedIDs() []K {
	ids := append([]K(nil), t.set.Dense()...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Registry owns an entity allocator plus a map from component-type key to
// erased store handle. Entity ids have width K. The first Bind[K,T] for a
// given T lazily creates and installs the SparseSet[K,T]; stores persist
// for the registry's lifetime even after every component of that type is
// unbound.
type Registry[K constraints.Unsigned] struct {
	entities *EntityManager[K]
	stores   map[reflect.Type]erasedStore[K]
}

// NewRegistry returns an empty registry for entity ids of width K.
func NewRegistry[K constraints.Unsigned]() *Registry[K] {
	return &Registry[K]{
		entities: NewEntityManager[K](),
		stores:   make(map[reflect.Type]erasedStore[K]),
	}
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func storeFor[K constraints.Unsigned, T any](r *Registry[K]) (*SparseSet[K, T], bool) {
	s, ok := r.stores[typeKey[T]()]
	if !ok {
		return nil, false
	}
	return s.(*typedStore[K, T]).set, true
}

func ensureStore[K constraints.Unsigned, T any](r *Registry[K]) *SparseSet[K, T] {
	key := typeKey[T]()
	if s, ok := r.stores[key]; ok {
		return s.(*typedStore[K, T]).set
	}
	set := NewSparseSet[K, T]()
	r.stores[key] = &typedStore[K, T]{set: set}
	return set
}

// MakeEntity allocates a fresh entity id.
func (r *Registry[K]) MakeEntity() K {
	return r.entities.Create()
}

// IsAlive reports whether e is currently live.
func (r *Registry[K]) IsAlive(e K) bool {
	return r.entities.Alive(e)
}

// KillEntity recycles e and purges it from every registered store. No-op if
// e is not alive. Stores are purged in Go map iteration order, which can
// differ from one call to the next; purging one store never affects
// another, so the order has no observable effect.
func (r *Registry[K]) KillEntity(e K) {
	if !r.entities.Kill(e) {
		return
	}
	for _, s := range r.stores {
		s.purge(e)
	}
}

// Stats summarizes registry occupancy for diagnostics.
type Stats struct {
	EntityCount     int
	ComponentTypes  int
	TotalComponents int
}

// Stats returns a snapshot of registry occupancy.
func (r *Registry[K]) Stats() Stats {
	total := 0
	for _, s := range r.stores {
		total += s.len()
	}
	return Stats{
		EntityCount:     r.entities.Len(),
		ComponentTypes:  len(r.stores),
		TotalComponents: total,
	}
}

// Has reports whether e has a component of type T. False if no store for T
// has ever been created.
func Has[K constraints.Unsigned, T any](r *Registry[K], e K) bool {
	set, ok := storeFor[K, T](r)
	if !ok {
		return false
	}
	return set.Has(e)
}

// Get returns a borrow of e's T component. The reference is invalidated by
// the next Bind[T]/Unbind[T]/KillEntity call on this registry.
func Get[K constraints.Unsigned, T any](r *Registry[K], e K) (*T, bool) {
	set, ok := storeFor[K, T](r)
	if !ok {
		return nil, false
	}
	return set.Get(e)
}

// Bind binds value as e's T component, creating the T-store on first use.
// Fails with ErrDeadEntity if e is not alive; any error from the underlying
// store is returned unchanged. The null id is never alive, so it is reported
// as ErrDeadEntity before the store's ErrInvalidKey check is reached.
func Bind[K constraints.Unsigned, T any](r *Registry[K], e K, value T) error {
	if !r.entities.Alive(e) {
		return ErrDeadEntity
	}
	set := ensureStore[K, T](r)
	return set.Bind(e, value)
}

// Unbind removes and returns e's T component. Succeeds independently of
// e's liveness — a just-killed entity simply has no components left to
// find.
func Unbind[K constraints.Unsigned, T any](r *Registry[K], e K) (T, bool) {
	set, ok := storeFor[K, T](r)
	if !ok {
		var zero T
		return zero, false
	}
	return set.Unbind(e)
}

// EntitiesWith returns every live entity id with a T component, in
// ascending order. Empty if no T-store exists.
func EntitiesWith[K constraints.Unsigned, T any](r *Registry[K]) []K {
	s, ok := r.stores[typeKey[T]()]
	if !ok {
		return nil
	}
	return s.sortedIDs()
}

// GetAll2 componentwise-fetches (T1, T2) for e.
func GetAll2[K constraints.Unsigned, T1, T2 any](r *Registry[K], e K) (*T1, *T2) {
	c1, _ := Get[K, T1](r, e)
	c2, _ := Get[K, T2](r, e)
	return c1, c2
}

// GetAll3 componentwise-fetches (T1, T2, T3) for e.
func GetAll3[K constraints.Unsigned, T1, T2, T3 any](r *Registry[K], e K) (*T1, *T2, *T3) {
	c1, _ := Get[K, T1](r, e)
	c2, _ := Get[K, T2](r, e)
	c3, _ := Get[K, T3](r, e)
	return c1, c2, c3
}

// GetAll4 componentwise-fetches (T1, T2, T3, T4) for e.
func GetAll4[K constraints.Unsigned, T1, T2, T3, T4 any](r *Registry[K], e K) (*T1, *T2, *T3, *T4) {
	c1, _ := Get[K, T1](r, e)
	c2, _ := Get[K, T2](r, e)
	c3, _ := Get[K, T3](r, e)
	c4, _ := Get[K, T4](r, e)
	return c1, c2, c3, c4
}
