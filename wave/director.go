package wave

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/looplab/fsm"

	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/event"
	"github.com/milk9111/horde/upgrade"
)

var (
	ErrWaveActive = errors.New("wave: encounter already running")
	ErrNotRunning = errors.New("wave: encounter not running")
)

// State is a director phase.
type State string

const (
	Idle            State = "idle"
	Countdown       State = "countdown"
	Spawning        State = "spawning"
	AwaitingClear   State = "awaiting_clear"
	RewardDisplay   State = "reward_display"
	AwaitingUpgrade State = "awaiting_upgrade"
)

const (
	evStart           = "start"
	evCountdownDone   = "countdown_done"
	evQuotaMet        = "quota_met"
	evCleared         = "cleared"
	evRewardShown     = "reward_shown"
	evUpgradeResolved = "upgrade_resolved"
	evRest            = "rest"
	evCancel          = "cancel"
)

type Config struct {
	Plan Plan

	Countdown     time.Duration
	GoBanner      time.Duration
	SpawnInterval time.Duration
	ClearPoll     time.Duration
	RewardDisplay time.Duration

	// AutoStart goes straight to the next countdown once the upgrade is
	// chosen; otherwise the director rests in Idle until Start.
	AutoStart bool
	// StartOnContact starts the first wave when the player touches the
	// trigger zone.
	StartOnContact bool

	Offers           int
	RewardMultiplier float64
}

// DefaultConfig returns the stock encounter tuning.
func DefaultConfig() Config {
	return Config{
		Plan: Plan{
			InitialCount:      10,
			Increment:         5,
			SpecialEnabled:    true,
			SpecialFrequency:  5,
			SpecialMultiplier: 2,
		},
		Countdown:        5 * time.Second,
		GoBanner:         time.Second,
		SpawnInterval:    2 * time.Second,
		ClearPoll:        500 * time.Millisecond,
		RewardDisplay:    3 * time.Second,
		AutoStart:        true,
		StartOnContact:   true,
		Offers:           3,
		RewardMultiplier: 1.5,
	}
}

// Rewards is how many upgrade choices a wave grants.
func (c Config) Rewards(special bool) int {
	if !special || c.RewardMultiplier <= 1 {
		return 1
	}
	return int(math.Ceil(c.RewardMultiplier))
}

// Status is what the UI shows for the director.
type Status struct {
	State     State
	Wave      Wave
	Countdown int
	Banner    string
}

// Director is the encounter state machine. It runs as a system: every
// Update advances the current phase by the world's tick, so no phase ever
// blocks the scheduler. Each phase keeps its own resumption data, reset on
// entry.
type Director struct {
	cfg     Config
	next    *Config
	machine *fsm.FSM

	spawner *Spawner
	catalog *upgrade.Catalog
	gate    *upgrade.Gate

	index     int
	wave      Wave
	triggered bool

	elapsed     time.Duration
	spawnTimer  time.Duration
	pollTimer   time.Duration
	rewardsLeft int
	shown       int

	StateChanged  event.Signal[State]
	CountdownTick event.Signal[int]
	WaveStarted   event.Signal[Wave]
	WaveCleared   event.Signal[Wave]
}

func NewDirector(cfg Config, spawner *Spawner, catalog *upgrade.Catalog, gate *upgrade.Gate) *Director {
	d := &Director{cfg: cfg, spawner: spawner, catalog: catalog, gate: gate}
	running := []string{string(Countdown), string(Spawning), string(AwaitingClear), string(RewardDisplay), string(AwaitingUpgrade)}
	d.machine = fsm.NewFSM(
		string(Idle),
		fsm.Events{
			{Name: evStart, Src: []string{string(Idle)}, Dst: string(Countdown)},
			{Name: evCountdownDone, Src: []string{string(Countdown)}, Dst: string(Spawning)},
			{Name: evQuotaMet, Src: []string{string(Spawning)}, Dst: string(AwaitingClear)},
			{Name: evCleared, Src: []string{string(AwaitingClear)}, Dst: string(RewardDisplay)},
			{Name: evRewardShown, Src: []string{string(RewardDisplay)}, Dst: string(AwaitingUpgrade)},
			{Name: evUpgradeResolved, Src: []string{string(AwaitingUpgrade)}, Dst: string(Countdown)},
			{Name: evRest, Src: []string{string(AwaitingUpgrade)}, Dst: string(Idle)},
			{Name: evCancel, Src: running, Dst: string(Idle)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				d.enter(State(e.Dst))
			},
		},
	)
	return d
}

func (d *Director) State() State {
	return State(d.machine.Current())
}

// Wave returns the current wave's bookkeeping.
func (d *Director) Wave() Wave {
	return d.wave
}

func (d *Director) Config() Config {
	return d.cfg
}

// Reconfigure replaces the tuning at the next countdown entry, or at once
// when idle.
func (d *Director) Reconfigure(cfg Config) {
	d.next = &cfg
	if d.State() == Idle {
		d.applyPending()
	}
}

// Start begins the next wave's countdown.
func (d *Director) Start() error {
	if d.State() != Idle {
		log.Printf("wave: start ignored, already in %s", d.State())
		return ErrWaveActive
	}
	return d.fire(evStart)
}

// OnPlayerContact starts the first wave when the player touches the trigger
// zone and the director is configured to wait for it.
func (d *Director) OnPlayerContact() {
	if !d.cfg.StartOnContact || d.triggered || d.State() != Idle {
		return
	}
	d.triggered = true
	if err := d.Start(); err != nil {
		log.Printf("wave: contact start: %v", err)
	}
}

// Cancel returns to Idle from any running phase. Spawned entities are left
// alive and a pending upgrade choice is dismissed unapplied.
func (d *Director) Cancel() error {
	if d.State() == Idle {
		log.Printf("wave: cancel ignored, not running")
		return ErrNotRunning
	}
	if d.State() == AwaitingUpgrade && d.gate != nil {
		d.gate.Dismiss()
	}
	return d.fire(evCancel)
}

// Status reports the phase plus countdown and banner text.
func (d *Director) Status() Status {
	st := Status{State: d.State(), Wave: d.wave}
	switch st.State {
	case Countdown:
		if remaining := d.cfg.Countdown - d.elapsed; remaining > 0 {
			st.Countdown = int(math.Ceil(remaining.Seconds()))
			label := "Wave"
			if d.wave.Special {
				label = "Special wave"
			}
			st.Banner = fmt.Sprintf("%s %d in %d", label, d.wave.Index, st.Countdown)
		} else {
			st.Banner = "Go!"
		}
	case RewardDisplay:
		st.Banner = fmt.Sprintf("Wave %d cleared", d.wave.Index)
		if n := d.cfg.Rewards(d.wave.Special); n > 1 {
			st.Banner += fmt.Sprintf(", choose %d upgrades", n)
		}
	case AwaitingUpgrade:
		st.Banner = "Choose an upgrade"
	}
	return st
}

// Update advances the current phase by one tick.
func (d *Director) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	switch d.State() {
	case Countdown:
		d.elapsed += dt
		d.emitCountdown()
		if d.elapsed >= d.cfg.Countdown+d.cfg.GoBanner {
			d.fire(evCountdownDone)
		}
	case Spawning:
		d.spawnTimer -= dt
		if d.spawnTimer <= 0 && d.spawner != nil {
			d.spawner.TrySpawnOne(w, &d.wave)
			d.spawnTimer = d.cfg.SpawnInterval
		}
		if d.wave.QuotaMet() {
			d.fire(evQuotaMet)
		}
	case AwaitingClear:
		d.pollTimer += dt
		if d.pollTimer < d.cfg.ClearPoll {
			return
		}
		d.pollTimer = 0
		if d.spawner != nil {
			d.wave.Active = d.spawner.ActiveCount(w)
		}
		if d.wave.Cleared() {
			d.WaveCleared.Emit(d.wave)
			d.fire(evCleared)
		}
	case RewardDisplay:
		d.elapsed += dt
		if d.elapsed >= d.cfg.RewardDisplay {
			d.fire(evRewardShown)
		}
	case AwaitingUpgrade:
		if d.gate != nil && d.gate.IsPending() {
			return
		}
		d.rewardsLeft--
		if d.rewardsLeft > 0 && d.present() {
			return
		}
		if d.cfg.AutoStart {
			d.fire(evUpgradeResolved)
		} else {
			d.fire(evRest)
		}
	}
}

func (d *Director) enter(s State) {
	d.elapsed = 0
	d.pollTimer = 0
	d.spawnTimer = 0
	d.shown = -1

	switch s {
	case Idle:
		d.rewardsLeft = 0
		d.applyPending()
	case Countdown:
		d.applyPending()
		d.index++
		d.wave = d.cfg.Plan.Wave(d.index)
	case Spawning:
		d.wave = d.cfg.Plan.Wave(d.index)
		if d.spawner != nil {
			d.wave.Active = len(d.spawner.active)
		}
		log.Printf("wave: %d started, quota %d, special %t", d.wave.Index, d.wave.Quota, d.wave.Special)
		d.WaveStarted.Emit(d.wave)
	case RewardDisplay:
		d.rewardsLeft = d.cfg.Rewards(d.wave.Special)
	case AwaitingUpgrade:
		if !d.present() {
			d.rewardsLeft = 0
		}
	}
	d.StateChanged.Emit(s)
}

// present hands a fresh batch of offers to the gate. It reports false when
// there is nothing to wait for.
func (d *Director) present() bool {
	if d.catalog == nil || d.gate == nil {
		log.Printf("wave: no upgrade catalog or gate configured, skipping reward")
		return false
	}
	if err := d.gate.Present(d.catalog.GenerateOffers(d.cfg.Offers)); err != nil {
		if errors.Is(err, upgrade.ErrGatePending) {
			return true
		}
		log.Printf("wave: present offers: %v", err)
		return false
	}
	return true
}

func (d *Director) emitCountdown() {
	st := d.Status()
	if st.Countdown != d.shown {
		d.shown = st.Countdown
		d.CountdownTick.Emit(st.Countdown)
	}
}

func (d *Director) applyPending() {
	if d.next == nil {
		return
	}
	d.cfg = *d.next
	d.next = nil
}

func (d *Director) fire(name string) error {
	if err := d.machine.Event(context.Background(), name); err != nil {
		log.Printf("wave: %s from %s: %v", name, d.State(), err)
		return err
	}
	return nil
}
