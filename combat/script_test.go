package combat

import "testing"

const enrageScript = `
damage := 15
enrage_below := 0.3
slow_factor := 0.6

update := func(engine) {
	if engine.health_fraction < enrage_below {
		return slow_factor
	}
	return 1
}
`

func TestScriptSpeedScale(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		fraction float64
		want     float64
		ok       bool
	}{
		{"healthy", enrageScript, 1, 1, true},
		{"hurt", enrageScript, 0.2, 0.6, true},
		{"at_threshold", enrageScript, 0.3, 1, true},
		{"no_hook", `damage := 15`, 0.1, 1, false},
		{"update_not_a_function", `update := 3`, 0.1, 1, false},
		{"non_number_result", `update := func(engine) { return "fast" }`, 0.5, 1, false},
		{"undefined_result", `update := func(engine) { return engine.missing.field }`, 0.5, 1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sb, err := NewScriptBehavior("brute.tengo", []byte(tc.src))
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			got, ok := sb.SpeedScale(tc.fraction)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("expected (%v, %v), got (%v, %v)", tc.want, tc.ok, got, ok)
			}
		})
	}
}

func TestScriptHookKeepsGlobals(t *testing.T) {
	sb, err := NewScriptBehavior("brute.tengo", []byte(enrageScript))
	if err != nil {
		t.Fatal(err)
	}
	if !sb.HasHook() {
		t.Fatal("expected the update hook to be detected")
	}
	for _, f := range []float64{0.9, 0.1, 0.5} {
		sb.SpeedScale(f)
	}
	if n, ok := sb.Global("damage"); !ok || n != 15 {
		t.Fatalf("damage global lost after hook runs: %d %v", n, ok)
	}
}
