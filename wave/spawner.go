package wave

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
)

type Point struct {
	X float64
	Y float64
}

// Factory builds one hostile at a point.
type Factory func(w *ecs.World, at Point) (ecs.Entity, error)

// Prefab is a named factory in a spawn pool.
type Prefab struct {
	Name  string
	Build Factory
}

type SpawnerConfig struct {
	PopulationCap int
	Points        []Point
	// Origin is used when no spawn points are configured.
	Origin Point
}

// Spawner creates hostiles for the current wave without exceeding the
// population cap, and tracks which of them are still alive.
type Spawner struct {
	cfg     SpawnerConfig
	normal  []Prefab
	special []Prefab
	rng     *rand.Rand

	active []ecs.Entity
	warned bool
}

func NewSpawner(cfg SpawnerConfig, normal, special []Prefab, rng *rand.Rand) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Spawner{cfg: cfg, normal: normal, special: special, rng: rng}
}

// SetPools swaps the prefab pools; spawned entities are kept.
func (s *Spawner) SetPools(normal, special []Prefab) {
	s.normal = normal
	s.special = special
	s.warned = false
}

func (s *Spawner) SetConfig(cfg SpawnerConfig) {
	s.cfg = cfg
}

// TrySpawnOne spawns one entity for wv if its quota and the population cap
// allow it.
func (s *Spawner) TrySpawnOne(w *ecs.World, wv *Wave) bool {
	if w == nil || wv == nil {
		return false
	}
	active := s.ActiveCount(w)
	wv.Active = active
	if wv.Spawned >= wv.Quota {
		return false
	}
	if s.cfg.PopulationCap > 0 && active >= s.cfg.PopulationCap {
		return false
	}

	pool := s.normal
	if wv.Special && len(s.special) > 0 {
		pool = s.special
	}
	if len(pool) == 0 {
		if !s.warned {
			log.Printf("spawner: no prefabs configured, wave %d cannot spawn", wv.Index)
			s.warned = true
		}
		return false
	}

	prefab := pool[s.rng.Intn(len(pool))]
	at := s.pickPoint()
	e, err := s.build(w, prefab, at)
	if err != nil {
		log.Printf("spawner: %v", err)
		return false
	}

	s.active = append(s.active, e)
	wv.Spawned++
	wv.Active = len(s.active)
	ecs.EmitCue(w, e, ecs.CueSpawn, at.X, at.Y)
	return true
}

// ActiveCount drops destroyed entities and returns how many remain.
func (s *Spawner) ActiveCount(w *ecs.World) int {
	kept := s.active[:0]
	for _, e := range s.active {
		if ecs.IsAlive(w, e) {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(s.active); i++ {
		s.active[i] = ecs.Null
	}
	s.active = kept
	return len(s.active)
}

// Active returns the live spawned entities.
func (s *Spawner) Active(w *ecs.World) []ecs.Entity {
	s.ActiveCount(w)
	return append([]ecs.Entity(nil), s.active...)
}

func (s *Spawner) pickPoint() Point {
	if len(s.cfg.Points) == 0 {
		return s.cfg.Origin
	}
	return s.cfg.Points[s.rng.Intn(len(s.cfg.Points))]
}

func (s *Spawner) build(w *ecs.World, prefab Prefab, at Point) (ecs.Entity, error) {
	if prefab.Build == nil {
		return ecs.Null, fmt.Errorf("prefab %q has no factory", prefab.Name)
	}
	e, err := prefab.Build(w, at)
	if err != nil {
		return ecs.Null, fmt.Errorf("spawn %s: %w", prefab.Name, err)
	}
	if !ecs.IsAlive(w, e) {
		return ecs.Null, fmt.Errorf("spawn %s: %w", prefab.Name, component.ErrEntityNotAlive)
	}
	return e, nil
}
