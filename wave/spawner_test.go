package wave

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
)

func markerFactory(name string, built *[]string) Factory {
	return func(w *ecs.World, at Point) (ecs.Entity, error) {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: at.X, Y: at.Y}); err != nil {
			return 0, err
		}
		if built != nil {
			*built = append(*built, name)
		}
		return e, nil
	}
}

func TestSpawnerRespectsCap(t *testing.T) {
	w := ecs.NewWorld()
	s := NewSpawner(SpawnerConfig{PopulationCap: 2}, []Prefab{{Name: "grunt", Build: markerFactory("grunt", nil)}}, nil, rand.New(rand.NewSource(1)))
	wv := Wave{Index: 1, Quota: 5}

	assert.True(t, s.TrySpawnOne(w, &wv))
	assert.True(t, s.TrySpawnOne(w, &wv))
	assert.False(t, s.TrySpawnOne(w, &wv), "cap reached")
	assert.Equal(t, 2, wv.Spawned)
	assert.Equal(t, 2, wv.Active)

	active := s.Active(w)
	require.Len(t, active, 2)
	ecs.DestroyEntity(w, active[0])

	assert.Equal(t, 1, s.ActiveCount(w))
	assert.True(t, s.TrySpawnOne(w, &wv), "a death frees a slot")
	assert.Equal(t, 3, wv.Spawned)
}

func TestSpawnerStopsAtQuota(t *testing.T) {
	w := ecs.NewWorld()
	s := NewSpawner(SpawnerConfig{}, []Prefab{{Name: "grunt", Build: markerFactory("grunt", nil)}}, nil, rand.New(rand.NewSource(1)))
	wv := Wave{Index: 1, Quota: 2}

	for i := 0; i < 5; i++ {
		s.TrySpawnOne(w, &wv)
	}
	assert.Equal(t, 2, wv.Spawned)
	assert.True(t, wv.QuotaMet())
}

func TestSpawnerPools(t *testing.T) {
	var built []string
	normal := []Prefab{{Name: "grunt", Build: markerFactory("grunt", &built)}}
	special := []Prefab{{Name: "elite", Build: markerFactory("elite", &built)}}

	t.Run("special_wave_uses_special_pool", func(t *testing.T) {
		built = nil
		w := ecs.NewWorld()
		s := NewSpawner(SpawnerConfig{}, normal, special, rand.New(rand.NewSource(1)))
		wv := Wave{Index: 5, Special: true, Quota: 3}
		for i := 0; i < 3; i++ {
			require.True(t, s.TrySpawnOne(w, &wv))
		}
		assert.Equal(t, []string{"elite", "elite", "elite"}, built)
	})

	t.Run("special_falls_back_to_normal", func(t *testing.T) {
		built = nil
		w := ecs.NewWorld()
		s := NewSpawner(SpawnerConfig{}, normal, nil, rand.New(rand.NewSource(1)))
		wv := Wave{Index: 5, Special: true, Quota: 1}
		require.True(t, s.TrySpawnOne(w, &wv))
		assert.Equal(t, []string{"grunt"}, built)
	})

	t.Run("no_pool", func(t *testing.T) {
		w := ecs.NewWorld()
		s := NewSpawner(SpawnerConfig{}, nil, nil, rand.New(rand.NewSource(1)))
		wv := Wave{Index: 1, Quota: 1}
		assert.False(t, s.TrySpawnOne(w, &wv))
		assert.Zero(t, wv.Spawned)
	})

	t.Run("factory_error_not_counted", func(t *testing.T) {
		w := ecs.NewWorld()
		broken := []Prefab{{Name: "broken", Build: func(*ecs.World, Point) (ecs.Entity, error) {
			return 0, errors.New("no sprite")
		}}}
		s := NewSpawner(SpawnerConfig{}, broken, nil, rand.New(rand.NewSource(1)))
		wv := Wave{Index: 1, Quota: 1}
		assert.False(t, s.TrySpawnOne(w, &wv))
		assert.Zero(t, wv.Spawned)
	})

	t.Run("nil_factory", func(t *testing.T) {
		w := ecs.NewWorld()
		s := NewSpawner(SpawnerConfig{}, []Prefab{{Name: "empty"}}, nil, rand.New(rand.NewSource(1)))
		wv := Wave{Index: 1, Quota: 1}
		assert.False(t, s.TrySpawnOne(w, &wv))
	})
}

func TestSpawnerPlacement(t *testing.T) {
	w := ecs.NewWorld()
	points := []Point{{X: 10, Y: 10}, {X: 90, Y: 90}}
	s := NewSpawner(SpawnerConfig{Points: points}, []Prefab{{Name: "grunt", Build: markerFactory("grunt", nil)}}, nil, rand.New(rand.NewSource(2)))
	wv := Wave{Index: 1, Quota: 20}

	for i := 0; i < 20; i++ {
		require.True(t, s.TrySpawnOne(w, &wv))
	}
	for _, e := range s.Active(w) {
		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		require.True(t, ok)
		assert.Contains(t, points, Point{X: tr.X, Y: tr.Y})
	}

	origin := NewSpawner(SpawnerConfig{Origin: Point{X: 5, Y: 6}}, []Prefab{{Name: "grunt", Build: markerFactory("grunt", nil)}}, nil, nil)
	wv = Wave{Index: 1, Quota: 1}
	require.True(t, origin.TrySpawnOne(w, &wv))
	tr, _ := ecs.Get(w, origin.Active(w)[0], component.TransformComponent.Kind())
	assert.Equal(t, 5.0, tr.X)
	assert.Equal(t, 6.0, tr.Y)
}

func TestSpawnEmitsCue(t *testing.T) {
	w := ecs.NewWorld()
	s := NewSpawner(SpawnerConfig{Origin: Point{X: 1, Y: 2}}, []Prefab{{Name: "grunt", Build: markerFactory("grunt", nil)}}, nil, nil)
	wv := Wave{Index: 1, Quota: 1}
	require.True(t, s.TrySpawnOne(w, &wv))

	events := w.Events().Drain()
	require.Len(t, events, 1)
	cue, ok := events[0].Data.(ecs.Cue)
	require.True(t, ok)
	assert.Equal(t, ecs.CueSpawn, cue.Kind)
	assert.Equal(t, 1.0, cue.X)
}
