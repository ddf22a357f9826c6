package combat

import (
	"log"
	"math"
	"reflect"
	"strings"

	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
)

// DamageAmounter is the read-only damage capability.
type DamageAmounter interface {
	DamageAmount() int
}

// DamageValuer is the read/write damage capability.
type DamageValuer interface {
	DamageValue() int
	SetDamageValue(int)
}

// DefaultCandidateNames are the member names the legacy probe looks for, in
// probe order.
var DefaultCandidateNames = []string{
	"Damage", "damage", "Dano", "dano", "daño", "Daño", "damageAmount", "damage_value",
}

// ResolverOptions configures the legacy name probe.
type ResolverOptions struct {
	LegacyNameProbe bool
	CandidateNames  []string
	Verbose         bool
}

// Resolver extracts a damage magnitude from whatever touched a receiver.
// Tiers are tried in order; each tier walks the contact entity and then its
// ancestors before the next tier is consulted. Resolve has no side effects
// and never fails: a miss is 0.
type Resolver struct {
	opts ResolverOptions
}

func NewResolver(opts ResolverOptions) *Resolver {
	if len(opts.CandidateNames) == 0 {
		opts.CandidateNames = DefaultCandidateNames
	}
	return &Resolver{opts: opts}
}

func (r *Resolver) Options() ResolverOptions {
	return r.opts
}

// Resolve returns the damage carried by contact, or 0.
func (r *Resolver) Resolve(w *ecs.World, contact ecs.Entity) int {
	lineage := ecs.Lineage(w, contact)
	if len(lineage) == 0 {
		return 0
	}

	for _, e := range lineage {
		if v, ok := capabilityDamage(w, e); ok {
			return v
		}
	}
	for _, e := range lineage {
		if v, ok := roleDamage(w, e); ok {
			return v
		}
	}
	if !r.opts.LegacyNameProbe {
		return 0
	}
	for _, e := range lineage {
		behaviors, ok := ecs.Get(w, e, component.BehaviorsComponent.Kind())
		if !ok {
			continue
		}
		for _, b := range behaviors.List {
			if v, ok := r.probe(b); ok {
				return v
			}
		}
	}
	return 0
}

func capabilityDamage(w *ecs.World, e ecs.Entity) (int, bool) {
	parts := ecs.Components(w, e)
	if behaviors, ok := ecs.Get(w, e, component.BehaviorsComponent.Kind()); ok {
		parts = append(parts, behaviors.List...)
	}
	for _, part := range parts {
		switch c := part.(type) {
		case DamageAmounter:
			return nonNegative(c.DamageAmount()), true
		case DamageValuer:
			return nonNegative(c.DamageValue()), true
		}
	}
	return 0, false
}

func roleDamage(w *ecs.World, e ecs.Entity) (int, bool) {
	if hb, ok := ecs.Get(w, e, component.HitboxComponent.Kind()); ok {
		return nonNegative(hb.Damage), true
	}
	if p, ok := ecs.Get(w, e, component.ProjectileComponent.Kind()); ok {
		return nonNegative(p.Damage), true
	}
	if h, ok := ecs.Get(w, e, component.HostileComponent.Kind()); ok {
		return nonNegative(h.ContactDamage), true
	}
	return 0, false
}

func (r *Resolver) probe(b any) (int, bool) {
	if b == nil {
		return 0, false
	}
	if sb, ok := b.(*ScriptBehavior); ok {
		return sb.probe(r.opts.CandidateNames)
	}

	v := reflect.ValueOf(b)
	if healthLike(v) {
		return 0, false
	}
	// Getter methods win over fields of the same name.
	for _, name := range r.opts.CandidateNames {
		if n, ok := r.probeMethod(v, name); ok {
			return n, true
		}
		if n, ok := r.probeField(v, name); ok {
			return n, true
		}
	}
	return 0, false
}

func (r *Resolver) probeMethod(v reflect.Value, name string) (n int, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			if r.opts.Verbose {
				log.Printf("combat: probe %s.%s: %v", v.Type(), name, rec)
			}
			n, ok = 0, false
		}
	}()

	m := v.MethodByName(name)
	if !m.IsValid() {
		return 0, false
	}
	t := m.Type()
	if t.NumIn() != 0 || t.NumOut() == 0 {
		return 0, false
	}
	return integral(m.Call(nil)[0])
}

func (r *Resolver) probeField(v reflect.Value, name string) (n int, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			if r.opts.Verbose {
				log.Printf("combat: probe %s.%s: %v", v.Type(), name, rec)
			}
			n, ok = 0, false
		}
	}()

	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return 0, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return 0, false
	}
	sf, found := v.Type().FieldByName(name)
	if !found || len(sf.Index) != 1 {
		return 0, false
	}
	return integral(v.Field(sf.Index[0]))
}

func integral(v reflect.Value) (int, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		if n > math.MaxInt || n < math.MinInt {
			return 0, false
		}
		return int(n), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := v.Uint()
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

var (
	healthAccessors = []string{"CurrentHealth", "MaxHealth", "VidaActual", "VidaMaxima"}
	healthMutators  = []string{"ApplyDamage", "AplicarDano", "Heal", "Curar"}
)

// healthLike reports whether a behavior looks like a health tracker, so its
// own fields are never read as damage.
func healthLike(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	t := v.Type()
	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	name := strings.ToLower(base.Name())
	for _, marker := range []string{"health", "vida", "hp"} {
		if strings.Contains(name, marker) {
			return true
		}
	}

	for _, m := range append(healthAccessors, healthMutators...) {
		if _, ok := t.MethodByName(m); ok {
			return true
		}
		if t.Kind() != reflect.Pointer {
			if _, ok := reflect.PointerTo(t).MethodByName(m); ok {
				return true
			}
		}
	}
	return false
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
