package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ X, Y float64 }
type velocity struct{ X, Y float64 }
type u32 struct{ V uint32 }

func TestRegistry_BindToDeadEntity(t *testing.T) {
	// Binding to a dead entity must fail.
	r := NewRegistry[uint32]()
	e := r.MakeEntity()
	r.KillEntity(e)

	err := Bind[uint32, position](r, e, position{1, 2})
	assert.ErrorIs(t, err, ErrDeadEntity)
}

func TestRegistry_BindToUnknownEntity(t *testing.T) {
	r := NewRegistry[uint32]()
	err := Bind[uint32, position](r, 42, position{})
	assert.ErrorIs(t, err, ErrDeadEntity)
}

func TestRegistry_BindNullIDReportsDeadEntity(t *testing.T) {
	r := NewRegistry[uint32]()
	// NullID is never alive, so it's reported as dead before the store
	// ever sees it — ErrDeadEntity takes precedence over ErrInvalidKey.
	err := Bind[uint32, position](r, NullID[uint32](), position{})
	assert.ErrorIs(t, err, ErrDeadEntity)
}

func TestRegistry_MultiComponentGet(t *testing.T) {
	// Fetching several components for one entity at once.
	r := NewRegistry[uint32]()
	e0 := r.MakeEntity()
	e1 := r.MakeEntity()

	require.NoError(t, Bind[uint32, position](r, e0, position{0, 2}))
	require.NoError(t, Bind[uint32, u32](r, e0, u32{0}))
	require.NoError(t, Bind[uint32, position](r, e1, position{1, 3}))
	require.NoError(t, Bind[uint32, u32](r, e1, u32{1}))

	c1, c2 := GetAll2[uint32, u32, position](r, e1)
	require.NotNil(t, c1)
	require.NotNil(t, c2)
	assert.Equal(t, uint32(1), c1.V)
	assert.Equal(t, position{1, 3}, *c2)
}

func TestRegistry_KillPurgesAllStores(t *testing.T) {
	// Killing an entity must purge it from every store.
	r := NewRegistry[uint32]()
	e := r.MakeEntity()
	require.NoError(t, Bind[uint32, position](r, e, position{}))
	require.NoError(t, Bind[uint32, velocity](r, e, velocity{}))
	require.NoError(t, Bind[uint32, u32](r, e, u32{}))

	r.KillEntity(e)

	assert.False(t, Has[uint32, position](r, e))
	assert.False(t, Has[uint32, velocity](r, e))
	assert.False(t, Has[uint32, u32](r, e))
}

func TestRegistry_UnbindIndependentOfLiveness(t *testing.T) {
	r := NewRegistry[uint32]()
	e := r.MakeEntity()
	require.NoError(t, Bind[uint32, position](r, e, position{1, 1}))

	r.KillEntity(e)
	// KillEntity already purged it; Unbind on the dead entity just finds
	// nothing, it doesn't error.
	_, ok := Unbind[uint32, position](r, e)
	assert.False(t, ok)
}

func TestRegistry_EntitiesWithAscending(t *testing.T) {
	r := NewRegistry[uint32]()
	var ids []uint32
	for i := 0; i < 5; i++ {
		ids = append(ids, r.MakeEntity())
	}
	// Bind out of order so dense insertion order differs from id order.
	for _, i := range []int{4, 1, 3, 0, 2} {
		require.NoError(t, Bind[uint32, position](r, ids[i], position{}))
	}

	got := EntitiesWith[uint32, position](r)
	assert.Equal(t, ids, got)
}

func TestRegistry_EntitiesWithEmptyForUnknownType(t *testing.T) {
	r := NewRegistry[uint32]()
	assert.Empty(t, EntitiesWith[uint32, position](r))
}

func TestRegistry_LazyStorePersistsAfterUnbindAll(t *testing.T) {
	r := NewRegistry[uint32]()
	e := r.MakeEntity()
	require.NoError(t, Bind[uint32, position](r, e, position{}))
	Unbind[uint32, position](r, e)

	// The store still exists (queryable, just empty) rather than being torn
	// down — lazy creation is for the registry's lifetime.
	assert.False(t, Has[uint32, position](r, e))
	stats := r.Stats()
	assert.Equal(t, 1, stats.ComponentTypes)
	assert.Equal(t, 0, stats.TotalComponents)
}

func TestRegistry_Stats(t *testing.T) {
	r := NewRegistry[uint32]()
	e0 := r.MakeEntity()
	e1 := r.MakeEntity()
	require.NoError(t, Bind[uint32, position](r, e0, position{}))
	require.NoError(t, Bind[uint32, velocity](r, e0, velocity{}))
	require.NoError(t, Bind[uint32, position](r, e1, position{}))

	stats := r.Stats()
	assert.Equal(t, 2, stats.EntityCount)
	assert.Equal(t, 2, stats.ComponentTypes)
	assert.Equal(t, 3, stats.TotalComponents)
}
