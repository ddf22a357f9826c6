package arena

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/wave"
)

func newArena(t *testing.T) *Arena {
	t.Helper()
	a, err := New("encounter.yaml", rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	return a
}

func TestNewArena(t *testing.T) {
	a := newArena(t)

	assert.True(t, ecs.IsAlive(a.World, a.Player))
	assert.Equal(t, wave.Idle, a.Director.State())
	assert.False(t, a.Paused())
	require.NotNil(t, a.PlayerHealth())
	assert.Equal(t, 60, a.PlayerHealth().Max())
	assert.NotNil(t, a.Input())
}

func TestArenaFirstWaveSpawns(t *testing.T) {
	a := newArena(t)
	require.NoError(t, a.Director.Start())

	for i := 0; i < 400 && !a.GameOver(); i++ {
		a.Tick()
	}

	st := a.Director.Status()
	assert.False(t, a.GameOver())
	assert.Equal(t, 1, st.Wave.Index)
	assert.Equal(t, wave.Spawning, st.State)
	assert.GreaterOrEqual(t, st.Wave.Spawned, 1)
	assert.Equal(t, st.Wave.Spawned, a.Spawner.ActiveCount(a.World))
}

func TestArenaPausedWhileGatePending(t *testing.T) {
	a := newArena(t)
	require.NoError(t, a.Gate.Present(a.Catalog.GenerateOffers(3)))

	before := a.World.Now()
	a.Tick()
	assert.True(t, a.Paused())
	assert.Equal(t, before, a.World.Now())

	_, err := a.Gate.Confirm()
	require.NoError(t, err)
	a.Tick()
	assert.Greater(t, a.World.Now(), before)
}

func TestArenaPlayerDeathEndsRun(t *testing.T) {
	a := newArena(t)
	require.NoError(t, a.Director.Start())
	a.Tick()

	a.PlayerHealth().ApplyDamage(1000)
	a.Tick()

	assert.True(t, a.GameOver())
	assert.False(t, ecs.IsAlive(a.World, a.Player))
	assert.Equal(t, wave.Idle, a.Director.State())
	assert.Nil(t, a.Input())
	assert.Nil(t, a.PlayerHealth())

	now := a.World.Now()
	a.Tick()
	assert.Equal(t, now, a.World.Now())
}

func TestArenaReload(t *testing.T) {
	a := newArena(t)
	require.NoError(t, a.Reload())
	assert.Equal(t, "arena", a.Encounter().Name)
}

func TestArenaMissingEncounter(t *testing.T) {
	_, err := New("missing.yaml", nil)
	assert.Error(t, err)
}
