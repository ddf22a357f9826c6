// Package arena assembles a playable encounter from prefab files: the world,
// its physics, the controlled entity, the spawn pools and the wave director.
package arena

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/milk9111/horde/combat"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
	"github.com/milk9111/horde/ecs/entity"
	"github.com/milk9111/horde/ecs/system"
	"github.com/milk9111/horde/prefabs"
	"github.com/milk9111/horde/stats"
	"github.com/milk9111/horde/upgrade"
	"github.com/milk9111/horde/wave"
)

type Arena struct {
	World     *ecs.World
	Physics   *ecs.PhysicsWorld
	Scheduler *ecs.Scheduler

	Director *wave.Director
	Spawner  *wave.Spawner
	Catalog  *upgrade.Catalog
	Gate     *upgrade.Gate
	Resolver *combat.Resolver

	Player     ecs.Entity
	Attributes *stats.Store

	encounterFile string
	encounter     *prefabs.EncounterSpec
	playerSpec    *prefabs.PlayerSpec
	over          bool
}

// New loads encounterFile and everything it names. rng drives spawning and
// offer generation.
func New(encounterFile string, rng *rand.Rand) (*Arena, error) {
	enc, err := prefabs.LoadEncounterSpec(encounterFile)
	if err != nil {
		return nil, fmt.Errorf("arena: load encounter: %w", err)
	}
	ps, err := prefabs.LoadPlayerSpec(enc.Player)
	if err != nil {
		return nil, fmt.Errorf("arena: load player: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld()
	w.SetPhysicsWorld(pw)

	player, attrs, err := entity.NewPlayer(w, ps, enc.Arena.PlayerStart.X, enc.Arena.PlayerStart.Y)
	if err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}

	if *enc.Wave.StartOnContact {
		tr := enc.Arena.Trigger
		if _, err := entity.NewWaveTrigger(w, tr.X, tr.Y, tr.Radius); err != nil {
			return nil, fmt.Errorf("arena: %w", err)
		}
	}

	normal, special, err := entity.LoadPools(enc)
	if err != nil {
		return nil, fmt.Errorf("arena: load pools: %w", err)
	}

	catCfg, err := enc.CatalogConfig(ps.Health.PerPoint)
	if err != nil {
		return nil, fmt.Errorf("arena: catalog: %w", err)
	}

	a := &Arena{
		World:         w,
		Physics:       pw,
		Player:        player,
		Attributes:    attrs,
		encounterFile: encounterFile,
		encounter:     enc,
		playerSpec:    ps,
	}
	a.Spawner = wave.NewSpawner(enc.SpawnerConfig(), normal, special, rng)
	a.Catalog = upgrade.NewCatalog(catCfg, rng)
	a.Gate = upgrade.NewGate(a.Catalog, attrs)
	a.Director = wave.NewDirector(enc.DirectorConfig(), a.Spawner, a.Catalog, a.Gate)
	a.Resolver = combat.NewResolver(enc.ResolverOptions())

	a.Scheduler = ecs.NewScheduler(
		system.NewMovementSystem(),
		system.NewBehaviorSystem(),
		system.NewSeekSystem(),
		system.NewWeaponSystem(),
		system.NewShooterSystem(),
		system.NewPhysicsSystem(pw),
		system.NewContactSystem(a.Resolver, a.Director),
		system.NewHealthSystem(),
		system.NewTTLSystem(),
		a.Director,
	)

	return a, nil
}

// Tick advances the simulation one fixed step. The world is frozen while an
// upgrade choice is pending and after the controlled entity dies.
func (a *Arena) Tick() {
	if a.over || a.Gate.IsPending() {
		return
	}
	a.Scheduler.Update(a.World)

	if !ecs.IsAlive(a.World, a.Player) {
		a.over = true
		log.Printf("arena: player died on wave %d", a.Director.Wave().Index)
		if a.Director.State() != wave.Idle {
			_ = a.Director.Cancel()
		}
	}
}

// Paused reports whether Tick is currently a no-op.
func (a *Arena) Paused() bool {
	return a.over || a.Gate.IsPending()
}

func (a *Arena) GameOver() bool {
	return a.over
}

// Input returns the controlled entity's input component, or nil once it is
// gone.
func (a *Arena) Input() *component.Input {
	in, ok := ecs.Get(a.World, a.Player, component.InputComponent.Kind())
	if !ok {
		return nil
	}
	return in
}

// PlayerHealth returns the controlled entity's tracker, or nil once it is
// gone.
func (a *Arena) PlayerHealth() *combat.Health {
	h, ok := ecs.Get(a.World, a.Player, combat.HealthComponent.Kind())
	if !ok {
		return nil
	}
	return h
}

func (a *Arena) Encounter() *prefabs.EncounterSpec {
	return a.encounter
}

// Reload re-reads the encounter file and its hostile pools. Wave tuning
// applies from the next countdown; pools, placement and offer tuning apply
// immediately. A file that fails to load or validate leaves everything as
// it was.
func (a *Arena) Reload() error {
	enc, err := prefabs.LoadEncounterSpec(a.encounterFile)
	if err != nil {
		return fmt.Errorf("arena: reload encounter: %w", err)
	}
	normal, special, err := entity.LoadPools(enc)
	if err != nil {
		return fmt.Errorf("arena: reload pools: %w", err)
	}
	catCfg, err := enc.CatalogConfig(a.playerSpec.Health.PerPoint)
	if err != nil {
		return fmt.Errorf("arena: reload catalog: %w", err)
	}

	a.encounter = enc
	a.Spawner.SetPools(normal, special)
	a.Spawner.SetConfig(enc.SpawnerConfig())
	a.Catalog.SetConfig(catCfg)
	a.Director.Reconfigure(enc.DirectorConfig())
	log.Printf("arena: reloaded %s", a.encounterFile)
	return nil
}
