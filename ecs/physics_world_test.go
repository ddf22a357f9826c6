package ecs

import (
	"testing"

	"github.com/milk9111/horde/ecs/component"
)

func countContacts(cs []Contact, self, other Entity, stay bool) int {
	n := 0
	for _, c := range cs {
		if c.Self == self && c.Other == other && c.Stay == stay {
			n++
		}
	}
	return n
}

func TestPhysicsWorldContacts(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	w.SetPhysicsWorld(pw)

	player := CreateEntity(w)
	hostile := CreateEntity(w)
	pw.EnsureBody(player, 0, 0, &component.Collider{Radius: 10, Role: component.ColliderPlayer})
	pw.EnsureBody(hostile, 5, 0, &component.Collider{Radius: 10, Role: component.ColliderHostile})

	pw.Step(1.0 / 60)
	first := pw.DrainContacts()
	if countContacts(first, player, hostile, false) != 1 || countContacts(first, hostile, player, false) != 1 {
		t.Fatalf("expected one enter each way, got %+v", first)
	}
	if countContacts(first, player, hostile, true) != 0 {
		t.Fatalf("enter step reported as stay: %+v", first)
	}

	pw.Step(1.0 / 60)
	second := pw.DrainContacts()
	if countContacts(second, player, hostile, true) != 1 || countContacts(second, player, hostile, false) != 0 {
		t.Fatalf("expected a stay on the next step, got %+v", second)
	}

	pw.RemoveBody(hostile)
	pw.Step(1.0 / 60)
	if got := pw.DrainContacts(); len(got) != 0 {
		t.Fatalf("expected no contacts after removal, got %+v", got)
	}
	if _, ok := pw.Body(hostile); ok {
		t.Fatal("body should be gone")
	}
}

func TestPhysicsWorldIgnoresUnreportedPairs(t *testing.T) {
	tests := []struct {
		name string
		a, b component.ColliderRole
		want bool
	}{
		{"player_hostile", component.ColliderPlayer, component.ColliderHostile, true},
		{"attack_hostile", component.ColliderAttack, component.ColliderHostile, true},
		{"player_projectile", component.ColliderPlayer, component.ColliderHostileAttack, true},
		{"player_trigger", component.ColliderPlayer, component.ColliderTrigger, true},
		{"hostile_hostile", component.ColliderHostile, component.ColliderHostile, false},
		{"attack_player", component.ColliderAttack, component.ColliderPlayer, false},
		{"projectile_hostile", component.ColliderHostileAttack, component.ColliderHostile, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld()
			pw := NewPhysicsWorld()
			a, b := CreateEntity(w), CreateEntity(w)
			pw.EnsureBody(a, 0, 0, &component.Collider{Radius: 8, Role: tc.a})
			pw.EnsureBody(b, 4, 4, &component.Collider{Radius: 8, Role: tc.b})
			pw.Step(1.0 / 60)
			got := len(pw.DrainContacts()) > 0
			if got != tc.want {
				t.Fatalf("contact reported = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPhysicsWorldSetRadius(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	attack := CreateEntity(w)
	hostile := CreateEntity(w)
	pw.EnsureBody(attack, 0, 0, &component.Collider{Radius: 5, Role: component.ColliderAttack})
	pw.EnsureBody(hostile, 30, 0, &component.Collider{Radius: 5, Role: component.ColliderHostile})

	pw.Step(1.0 / 60)
	if got := pw.DrainContacts(); len(got) != 0 {
		t.Fatalf("expected no contact before growing, got %+v", got)
	}

	pw.SetRadius(attack, 40)
	if pb, _ := pw.Body(attack); pb.Radius != 40 {
		t.Fatalf("expected radius 40, got %v", pb.Radius)
	}
	pw.Step(1.0 / 60)
	if got := pw.DrainContacts(); countContacts(got, hostile, attack, false) != 1 {
		t.Fatalf("expected contact after growing, got %+v", got)
	}
}

func TestPhysicsWorldNil(t *testing.T) {
	var pw *PhysicsWorld
	pw.Step(1)
	pw.RemoveBody(1)
	if pw.DrainContacts() != nil || pw.Space() != nil {
		t.Fatal("nil physics world should be inert")
	}
	if _, ok := pw.Body(1); ok {
		t.Fatal("nil physics world has no bodies")
	}
}
