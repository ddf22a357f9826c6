package stats

import (
	"math"
	"testing"

	"github.com/milk9111/horde/ecs"
)

func TestStoreClamp(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		cap     int
		initial int
		ops     func(s *Store)
		want    int
	}{
		{"capped_modify_over", Strength, 5, 3, func(s *Store) { s.Modify(Strength, 10) }, 5},
		{"capped_set_over", Scale, 4, 0, func(s *Store) { s.Set(Scale, 99) }, 4},
		{"uncapped_grows", MoveSpeed, 0, 2, func(s *Store) { s.Modify(MoveSpeed, 40) }, 42},
		{"floor_zero", Cooldown, 10, 2, func(s *Store) { s.Modify(Cooldown, -7) }, 0},
		{"health_floor_one", Health, 0, 3, func(s *Store) { s.Modify(Health, -10) }, 1},
		{"health_initial_zero", Health, 0, 0, func(s *Store) {}, 1},
		{"negative_initial", AttackSpeed, 3, -4, func(s *Store) {}, 0},
		{"huge_delta_saturates_to_cap", Strength, 20, 5, func(s *Store) { s.Modify(Strength, math.MaxInt) }, 20},
		{"huge_delta_uncapped", MoveSpeed, 0, 5, func(s *Store) { s.Modify(MoveSpeed, math.MaxInt) }, math.MaxInt},
		{"huge_negative_delta_floors", Health, 0, 5, func(s *Store) { s.Modify(Health, math.MinInt) }, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore(map[Kind]int{tc.kind: tc.initial}, map[Kind]int{tc.kind: tc.cap})
			tc.ops(s)
			if got := s.Get(tc.kind); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestStoreNotifications(t *testing.T) {
	s := NewStore(map[Kind]int{Strength: 1}, map[Kind]int{Strength: 3})

	var got []int
	s.Subscribe(Strength, func(v int) { got = append(got, v) })

	s.Modify(Strength, 0)
	if len(got) != 0 {
		t.Fatalf("zero delta notified: %v", got)
	}

	s.Modify(Strength, 5)
	s.Set(Strength, 3)
	s.Modify(Strength, 1)

	want := []int{3, 3, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestStoreOtherKindsUntouched(t *testing.T) {
	s := NewStore(map[Kind]int{Strength: 2, Scale: 1}, nil)
	fired := false
	s.Subscribe(Scale, func(int) { fired = true })

	s.Modify(Strength, 1)
	if fired {
		t.Fatal("modifying strength notified scale")
	}
	if s.Get(Scale) != 1 {
		t.Fatalf("scale changed to %d", s.Get(Scale))
	}
	snap := s.Snapshot()
	if snap[Strength] != 3 || snap[Scale] != 1 || snap[Health] != 1 {
		t.Fatalf("unexpected snapshot %v", snap)
	}
}

func TestInvalidKind(t *testing.T) {
	s := NewStore(nil, nil)
	bad := Kind(42)
	s.Modify(bad, 1)
	s.Set(bad, 1)
	if s.Get(bad) != 0 || s.Cap(bad) != 0 {
		t.Fatal("invalid kind should read zero")
	}
	s.Subscribe(bad, func(int) {}).Unsubscribe()
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("round trip %s: got %v, %v", k, got, err)
		}
	}
	if _, err := ParseKind(" Attack_Speed "); err != nil {
		t.Fatalf("expected case and space insensitive parse: %v", err)
	}
	if _, err := ParseKind("luck"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestLookupWalksLineage(t *testing.T) {
	w := ecs.NewWorld()
	owner := ecs.CreateEntity(w)
	child := ecs.CreateEntity(w)
	s := NewStore(map[Kind]int{Strength: 4}, nil)
	if err := ecs.Add(w, owner, StoreComponent.Kind(), s); err != nil {
		t.Fatal(err)
	}
	if err := ecs.SetParent(w, child, owner); err != nil {
		t.Fatal(err)
	}

	r, ok := Lookup(w, child)
	if !ok || r.Get(Strength) != 4 {
		t.Fatalf("expected the owner's store, got %v %v", r, ok)
	}

	stranger := ecs.CreateEntity(w)
	if _, ok := Lookup(w, stranger); ok {
		t.Fatal("entity without a store in its lineage found one")
	}
}
