// Package ecs implements the core of an in-process entity-component-system
// registry: a sparse-set component store per component type, an entity
// allocator with implicit free-list recycling, and a type-erased registry
// that composes must-have/must-not-have queries over the stores.
//
// The registry is single-threaded cooperative. Any call that mutates state
// (MakeEntity, KillEntity, Bind, Unbind) requires exclusive access to the
// Registry and every store it owns; read-only calls (IsAlive, Has, Get,
// EntitiesWith, GetAll*, Query*) may run concurrently with other reads but
// never with a writer. The package takes no locks of its own — callers
// that share a Registry across goroutines must guard it externally (a
// sync.RWMutex around the boundary is enough; see concurrency_test.go for a
// reader-only stress test of that contract).
package ecs
