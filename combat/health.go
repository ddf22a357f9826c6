package combat

import (
	"time"

	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
	"github.com/milk9111/horde/event"
	"github.com/milk9111/horde/stats"
)

// Clock supplies simulated time; *ecs.World satisfies it.
type Clock interface {
	Now() time.Duration
}

// Source selects which contacts a tracker takes damage from.
type Source int

const (
	// FromHostile is used by the controlled entity.
	FromHostile Source = iota
	// FromAttack is used by hostiles.
	FromAttack
)

type HealthConfig struct {
	MaxBase         int
	PointValue      int
	Invulnerability time.Duration
	ContactInterval time.Duration
	Accept          Source
}

// Health tracks current and maximum health for one entity.
//
// Max is MaxBase plus PointValue for each point of the owner's Health
// attribute. Positive damage opens an invulnerability window during which
// further positive damage is ignored. Reaching zero is terminal: Died fires
// once and the health system removes the entity.
type Health struct {
	cfg   HealthConfig
	clock Clock

	current int
	max     int
	dead    bool

	invulnerableUntil time.Duration
	lastContact       time.Duration
	contacted         bool

	Changed    event.Signal[int]
	MaxChanged event.Signal[int]
	Hit        event.Signal[int]
	Died       event.Signal[struct{}]

	subs event.Group
}

var HealthComponent = component.NewComponent[Health]()

func NewHealth(cfg HealthConfig, clock Clock) *Health {
	h := &Health{cfg: cfg, clock: clock}
	h.max = h.effectiveMax(0)
	h.current = h.max
	return h
}

// Bind derives max health from attrs and follows its Health changes until
// Close. Current health starts full.
func (h *Health) Bind(attrs stats.Reader) {
	if attrs == nil {
		return
	}
	h.max = h.effectiveMax(attrs.Get(stats.Health))
	h.current = h.max
	h.subs.Add(attrs.Subscribe(stats.Health, h.OnMaxHealthChanged))
}

// Close releases attribute subscriptions.
func (h *Health) Close() {
	h.subs.Close()
}

func (h *Health) Current() int { return h.current }
func (h *Health) Max() int     { return h.max }
func (h *Health) Dead() bool   { return h.dead }

// Fraction is current over max, for health bars.
func (h *Health) Fraction() float64 {
	if h.max <= 0 {
		return 0
	}
	return float64(h.current) / float64(h.max)
}

// Invulnerable reports whether the post-hit window is still open.
func (h *Health) Invulnerable() bool {
	return !h.dead && h.now() < h.invulnerableUntil
}

// InvulnerableUntil returns when the current window closes.
func (h *Health) InvulnerableUntil() time.Duration {
	return h.invulnerableUntil
}

// ApplyDamage subtracts amount from current health.
func (h *Health) ApplyDamage(amount int) {
	if amount == 0 || h.dead {
		return
	}
	if amount > 0 && h.Invulnerable() {
		return
	}

	h.current = clampInt(h.current-amount, 0, h.max)
	h.Changed.Emit(h.current)

	if amount > 0 {
		if h.cfg.Invulnerability > 0 {
			h.invulnerableUntil = h.now() + h.cfg.Invulnerability
		}
		h.Hit.Emit(amount)
	}

	if h.current == 0 {
		h.dead = true
		h.Died.Emit(struct{}{})
	}
}

// Heal raises current health up to max. It does not touch invulnerability.
func (h *Health) Heal(amount int) {
	if amount <= 0 || h.dead {
		return
	}
	h.current = clampInt(h.current+amount, 0, h.max)
	h.Changed.Emit(h.current)
}

// OnMaxHealthChanged recomputes max from the Health attribute's points. A
// raise is added to current health; a drop only clamps it.
func (h *Health) OnMaxHealthChanged(points int) {
	if h.dead {
		return
	}
	next := h.effectiveMax(points)
	if next == h.max {
		return
	}
	if diff := next - h.max; diff > 0 {
		h.current += diff
	}
	h.max = next
	if h.current > h.max {
		h.current = h.max
	}
	h.MaxChanged.Emit(h.max)
	h.Changed.Emit(h.current)
}

// HandleContact applies damage from other touching self and returns the
// health actually lost. Stay contacts are rate limited by ContactInterval.
func (h *Health) HandleContact(w *ecs.World, self, other ecs.Entity, stay bool, r *Resolver) int {
	if h.dead || r == nil || !h.Accepts(w, self, other) {
		return 0
	}

	now := h.now()
	if stay && h.contacted && now-h.lastContact < h.cfg.ContactInterval {
		return 0
	}
	h.lastContact = now
	h.contacted = true

	before := h.current
	h.ApplyDamage(r.Resolve(w, other))
	return before - h.current
}

// Accepts reports whether other is a damage source self takes contacts from:
// alive, not self or one of self's descendants, and of the accepted role.
func (h *Health) Accepts(w *ecs.World, self, other ecs.Entity) bool {
	if other == self || !ecs.IsAlive(w, other) || ecs.IsDescendant(w, other, self) {
		return false
	}
	switch h.cfg.Accept {
	case FromHostile:
		_, _, ok := ecs.FindInLineage(w, other, component.HostileTagComponent.Kind())
		return ok
	case FromAttack:
		_, _, ok := ecs.FindInLineage(w, other, component.AttackTagComponent.Kind())
		return ok
	}
	return false
}

func (h *Health) effectiveMax(points int) int {
	m := h.cfg.MaxBase + points*h.cfg.PointValue
	if m < 1 {
		m = 1
	}
	return m
}

func (h *Health) now() time.Duration {
	if h.clock == nil {
		return 0
	}
	return h.clock.Now()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
