package ecs

import (
	"reflect"

	"golang.org/x/exp/constraints"
)

// Query builds a must-have set and a must-not-have set of component
// types, composing an AND/NOT predicate over the registry's stores using
// the same reflect.Type keys the rest of the registry uses. Go methods
// can't carry their own type parameters, so With/Without are package
// functions over *Query rather than methods.
type Query[K constraints.Unsigned] struct {
	r       *Registry[K]
	must    []reflect.Type
	mustNot []reflect.Type
}

// NewQuery returns an empty query over r.
func NewQuery[K constraints.Unsigned](r *Registry[K]) *Query[K] {
	return &Query[K]{r: r}
}

// Query returns a new empty query over r.
func (r *Registry[K]) Query() *Query[K] {
	return NewQuery(r)
}

// With adds T to the must-have set.
func With[K constraints.Unsigned, T any](q *Query[K]) *Query[K] {
	q.must = append(q.must, typeKey[T]())
	return q
}

// Without adds T to the must-not-have set.
func Without[K constraints.Unsigned, T any](q *Query[K]) *Query[K] {
	q.mustNot = append(q.mustNot, typeKey[T]())
	return q
}

// Entities resolves the query to its ascending, deduplicated result ids: the
// intersection of every must-have type's entities, minus the union of every
// must-not-have type's entities. A query with an empty must-have set
// deliberately yields nil — it expresses no projection, so there is nothing
// to emit, even though every entity vacuously satisfies zero constraints.
func (q *Query[K]) Entities() []K {
	if len(q.must) == 0 {
		return nil
	}

	result, ok := q.sortedEntitiesFor(q.must[0])
	if !ok {
		return nil
	}
	for _, t := range q.must[1:] {
		next, ok := q.sortedEntitiesFor(t)
		if !ok {
			return nil
		}
		result = intersectSorted(result, next)
		if len(result) == 0 {
			return result
		}
	}

	for _, t := range q.mustNot {
		excl, ok := q.sortedEntitiesFor(t)
		if !ok {
			continue
		}
		result = subtractSorted(result, excl)
	}

	return result
}

func (q *Query[K]) sortedEntitiesFor(t reflect.Type) ([]K, bool) {
	s, ok := q.r.stores[t]
	if !ok {
		return nil, false
	}
	return s.sortedIDs(), true
}

// intersectSorted returns the sorted intersection of two ascending,
// duplicate-free id slices via a two-pointer merge.
func intersectSorted[K constraints.Unsigned](a, b []K) []K {
	out := make([]K, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// subtractSorted returns the sorted set difference a \ b via a two-pointer
// merge.
func subtractSorted[K constraints.Unsigned](a, b []K) []K {
	out := make([]K, 0, len(a))
	i, j := 0, 0
	for i < len(a) {
		for j < len(b) && b[j] < a[i] {
			j++
		}
		if j < len(b) && b[j] == a[i] {
			i++
			continue
		}
		out = append(out, a[i])
		i++
	}
	return out
}

// Tuple1 pairs an entity with its guaranteed-present T1 component.
type Tuple1[K constraints.Unsigned, T1 any] struct {
	ID K
	C1 *T1
}

// Query1 returns, in ascending id order, every entity with a T1 component
// and none of excludes.
func Query1[K constraints.Unsigned, T1 any](r *Registry[K], excludes ...reflect.Type) []Tuple1[K, T1] {
	q := &Query[K]{r: r, must: []reflect.Type{typeKey[T1]()}, mustNot: excludes}
	ids := q.Entities()
	out := make([]Tuple1[K, T1], 0, len(ids))
	for _, id := range ids {
		c1, ok := Get[K, T1](r, id)
		if !ok {
			panic("ecs: query invariant violated: must-have component missing")
		}
		out = append(out, Tuple1[K, T1]{ID: id, C1: c1})
	}
	return out
}

// Tuple2 pairs an entity with its guaranteed-present T1, T2 components.
type Tuple2[K constraints.Unsigned, T1, T2 any] struct {
	ID K
	C1 *T1
	C2 *T2
}

// Query2 returns, in ascending id order, every entity with both T1 and T2
// components and none of excludes.
func Query2[K constraints.Unsigned, T1, T2 any](r *Registry[K], excludes ...reflect.Type) []Tuple2[K, T1, T2] {
	q := &Query[K]{r: r, must: []reflect.Type{typeKey[T1](), typeKey[T2]()}, mustNot: excludes}
	ids := q.Entities()
	out := make([]Tuple2[K, T1, T2], 0, len(ids))
	for _, id := range ids {
		c1, ok1 := Get[K, T1](r, id)
		c2, ok2 := Get[K, T2](r, id)
		if !ok1 || !ok2 {
			panic("ecs: query invariant violated: must-have component missing")
		}
		out = append(out, Tuple2[K, T1, T2]{ID: id, C1: c1, C2: c2})
	}
	return out
}

// Tuple3 pairs an entity with its guaranteed-present T1, T2, T3 components.
type Tuple3[K constraints.Unsigned, T1, T2, T3 any] struct {
	ID K
	C1 *T1
	C2 *T2
	C3 *T3
}

// Query3 returns, in ascending id order, every entity with T1, T2, and T3
// components and none of excludes.
func Query3[K constraints.Unsigned, T1, T2, T3 any](r *Registry[K], excludes ...reflect.Type) []Tuple3[K, T1, T2, T3] {
	q := &Query[K]{r: r, must: []reflect.Type{typeKey[T1](), typeKey[T2](), typeKey[T3]()}, mustNot: excludes}
	ids := q.Entities()
	out := make([]Tuple3[K, T1, T2, T3], 0, len(ids))
	for _, id := range ids {
		c1, ok1 := Get[K, T1](r, id)
		c2, ok2 := Get[K, T2](r, id)
		c3, ok3 := Get[K, T3](r, id)
		if !ok1 || !ok2 || !ok3 {
			panic("ecs: query invariant violated: must-have component missing")
		}
		out = append(out, Tuple3[K, T1, T2, T3]{ID: id, C1: c1, C2: c2, C3: c3})
	}
	return out
}

// Tuple4 pairs an entity with its guaranteed-present T1..T4 components.
type Tuple4[K constraints.Unsigned, T1, T2, T3, T4 any] struct {
	ID K
	C1 *T1
	C2 *T2
	C3 *T3
	C4 *T4
}

// Query4 returns, in ascending id order, every entity with T1..T4
// components and none of excludes. Four is the cap — beyond this arity,
// codegen or reflection-based iteration pays off better than another
// hand-written QueryN.
func Query4[K constraints.Unsigned, T1, T2, T3, T4 any](r *Registry[K], excludes ...reflect.Type) []Tuple4[K, T1, T2, T3, T4] {
	q := &Query[K]{r: r, must: []reflect.Type{typeKey[T1](), typeKey[T2](), typeKey[T3](), typeKey[T4]()}, mustNot: excludes}
	ids := q.Entities()
	out := make([]Tuple4[K, T1, T2, T3, T4], 0, len(ids))
	for _, id := range ids {
		c1, ok1 := Get[K, T1](r, id)
		c2, ok2 := Get[K, T2](r, id)
		c3, ok3 := Get[K, T3](r, id)
		c4, ok4 := Get[K, T4](r, id)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			panic("ecs: query invariant violated: must-have component missing")
		}
		out = append(out, Tuple4[K, T1, T2, T3, T4]{ID: id, C1: c1, C2: c2, C3: c3, C4: c4})
	}
	return out
}

// Exclude returns the type key for T, for use as a Query1..Query4 exclude
// argument (e.g. Query2[uint32, Position, Velocity](r, Exclude[Frozen]())).
func Exclude[T any]() reflect.Type {
	return typeKey[T]()
}
