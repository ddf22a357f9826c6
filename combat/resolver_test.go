package combat

import (
	"testing"

	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
)

type fixedAmount struct{ n int }

func (f *fixedAmount) DamageAmount() int { return f.n }

type valued struct{ n int }

func (v *valued) DamageValue() int     { return v.n }
func (v *valued) SetDamageValue(n int) { v.n = n }

type legacyField struct {
	Damage int
}

type legacyMethod struct {
	Damage int
}

func (l legacyMethod) Dano() int { return 99 }

type getterOverField struct {
	damage int
}

func (g getterOverField) Damage() int { return 7 }

type panicky struct{}

func (panicky) Damage() int { panic("boom") }

type wrongType struct {
	Damage string
}

type enemyHealth struct {
	Damage int
}

type vidaTracker struct {
	Damage int
}

func (v *vidaTracker) CurrentHealth() int { return 10 }

func newEntity(t *testing.T, w *ecs.World, parts ...any) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	var behaviors []any
	for _, p := range parts {
		switch c := p.(type) {
		case *component.Hitbox:
			if err := ecs.Add(w, e, component.HitboxComponent.Kind(), c); err != nil {
				t.Fatal(err)
			}
		case *component.Projectile:
			if err := ecs.Add(w, e, component.ProjectileComponent.Kind(), c); err != nil {
				t.Fatal(err)
			}
		case *component.Hostile:
			if err := ecs.Add(w, e, component.HostileComponent.Kind(), c); err != nil {
				t.Fatal(err)
			}
		default:
			behaviors = append(behaviors, p)
		}
	}
	if len(behaviors) > 0 {
		if err := ecs.Add(w, e, component.BehaviorsComponent.Kind(), &component.Behaviors{List: behaviors}); err != nil {
			t.Fatal(err)
		}
	}
	return e
}

func TestResolveTiers(t *testing.T) {
	legacy := NewResolver(ResolverOptions{LegacyNameProbe: true})
	strict := NewResolver(ResolverOptions{})

	tests := []struct {
		name     string
		resolver *Resolver
		parts    []any
		want     int
	}{
		{"nothing", legacy, nil, 0},
		{"capability_amount", legacy, []any{&fixedAmount{n: 12}}, 12},
		{"capability_value", legacy, []any{&valued{n: 8}}, 8},
		{"capability_beats_role", legacy, []any{&fixedAmount{n: 3}, &component.Hitbox{Damage: 40}}, 3},
		{"hitbox", legacy, []any{&component.Hitbox{Damage: 11}}, 11},
		{"projectile", legacy, []any{&component.Projectile{Damage: 6}}, 6},
		{"hostile_contact", legacy, []any{&component.Hostile{ContactDamage: 10}}, 10},
		{"hitbox_before_hostile", legacy, []any{&component.Hostile{ContactDamage: 10}, &component.Hitbox{Damage: 2}}, 2},
		{"role_beats_legacy", legacy, []any{&legacyField{Damage: 50}, &component.Projectile{Damage: 4}}, 4},
		{"legacy_field", legacy, []any{&legacyField{Damage: 15}}, 15},
		{"legacy_field_value_receiver", legacy, []any{legacyField{Damage: 16}}, 16},
		{"legacy_disabled", strict, []any{&legacyField{Damage: 15}}, 0},
		{"candidate_order", legacy, []any{legacyMethod{Damage: 5}}, 5},
		{"getter_over_field", legacy, []any{getterOverField{damage: 1}}, 7},
		{"panic_swallowed", legacy, []any{panicky{}}, 0},
		{"non_integer_skipped", legacy, []any{&wrongType{Damage: "lots"}}, 0},
		{"health_named_skipped", legacy, []any{&enemyHealth{Damage: 30}}, 0},
		{"health_methods_skipped", legacy, []any{&vidaTracker{Damage: 30}}, 0},
		{"health_skipped_then_next", legacy, []any{&enemyHealth{Damage: 30}, &legacyField{Damage: 9}}, 9},
		{"negative_capability_clamped", legacy, []any{&fixedAmount{n: -5}}, 0},
		{"negative_role_clamped", legacy, []any{&component.Hitbox{Damage: -5}}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := newEntity(t, w, tc.parts...)
			if got := tc.resolver.Resolve(w, e); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestResolveWalksAncestors(t *testing.T) {
	r := NewResolver(ResolverOptions{LegacyNameProbe: true})

	t.Run("role_on_parent", func(t *testing.T) {
		w := ecs.NewWorld()
		parent := newEntity(t, w, &component.Hostile{ContactDamage: 10})
		child := newEntity(t, w)
		if err := ecs.SetParent(w, child, parent); err != nil {
			t.Fatal(err)
		}
		if got := r.Resolve(w, child); got != 10 {
			t.Fatalf("expected parent's 10, got %d", got)
		}
	})

	t.Run("tier_major", func(t *testing.T) {
		// A role on the child loses to a capability on the parent.
		w := ecs.NewWorld()
		parent := newEntity(t, w, &fixedAmount{n: 20})
		child := newEntity(t, w, &component.Hitbox{Damage: 5})
		if err := ecs.SetParent(w, child, parent); err != nil {
			t.Fatal(err)
		}
		if got := r.Resolve(w, child); got != 20 {
			t.Fatalf("expected capability 20, got %d", got)
		}
	})

	t.Run("self_before_parent", func(t *testing.T) {
		w := ecs.NewWorld()
		parent := newEntity(t, w, &component.Hostile{ContactDamage: 10})
		child := newEntity(t, w, &component.Projectile{Damage: 3})
		if err := ecs.SetParent(w, child, parent); err != nil {
			t.Fatal(err)
		}
		if got := r.Resolve(w, child); got != 3 {
			t.Fatalf("expected own 3, got %d", got)
		}
	})

	t.Run("dead_entity", func(t *testing.T) {
		w := ecs.NewWorld()
		e := newEntity(t, w, &component.Hitbox{Damage: 5})
		ecs.DestroyEntity(w, e)
		if got := r.Resolve(w, e); got != 0 {
			t.Fatalf("expected 0 for dead entity, got %d", got)
		}
	})
}

func TestResolveIsPure(t *testing.T) {
	r := NewResolver(ResolverOptions{LegacyNameProbe: true})
	w := ecs.NewWorld()
	v := &valued{n: 4}
	e := newEntity(t, w, v)

	for i := 0; i < 3; i++ {
		if got := r.Resolve(w, e); got != 4 {
			t.Fatalf("call %d: expected 4, got %d", i, got)
		}
	}
	if v.n != 4 {
		t.Fatalf("resolve mutated the source: %d", v.n)
	}
}

func TestResolveCustomCandidates(t *testing.T) {
	r := NewResolver(ResolverOptions{LegacyNameProbe: true, CandidateNames: []string{"Power"}})
	w := ecs.NewWorld()
	e := newEntity(t, w, &struct{ Power, Damage int }{Power: 3, Damage: 100})
	if got := r.Resolve(w, e); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestScriptBehavior(t *testing.T) {
	r := NewResolver(ResolverOptions{LegacyNameProbe: true})

	tests := []struct {
		name   string
		script string
		src    string
		want   int
	}{
		{"int_global", "brute.tengo", `damage := 15`, 15},
		{"computed", "brute.tengo", `base := 4; damage := base * 3`, 12},
		{"later_candidate", "brute.tengo", `damage_value := 6`, 6},
		{"non_int_ignored", "brute.tengo", `damage := "lots"`, 0},
		{"health_named_script", "health.tengo", `damage := 15`, 0},
		{"health_globals", "brute.tengo", `current_health := 10; damage := 15`, 0},
		{"stdlib_import", "brute.tengo", `math := import("math"); damage := int(math.floor(7.9))`, 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sb, err := NewScriptBehavior(tc.script, []byte(tc.src))
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			w := ecs.NewWorld()
			e := newEntity(t, w, sb)
			if got := r.Resolve(w, e); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}

	t.Run("compile_error", func(t *testing.T) {
		if _, err := NewScriptBehavior("bad.tengo", []byte(`damage := `)); err == nil {
			t.Fatal("expected compile error")
		}
	})
}
