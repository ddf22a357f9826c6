package combat

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// hookDispatch is appended to scripts that define update(engine). It runs the
// hook only when the update phase is requested, so the plain run at load
// just declares globals.
const hookDispatch = `
if __phase == "update" {
	__result = update(__engine)
}
`

// ScriptBehavior is a legacy behavior written in tengo. The script runs once
// at load; its globals are then visible to the damage resolver's name probe
// the way struct fields are. A script may also define update(engine), called
// every tick with the owner's state and returning a movement multiplier.
type ScriptBehavior struct {
	Name     string
	compiled *tengo.Compiled
	hooked   bool
}

// NewScriptBehavior compiles and runs src.
func NewScriptBehavior(name string, src []byte) (*ScriptBehavior, error) {
	compiled, err := compileScript(src, false)
	if err != nil {
		return nil, fmt.Errorf("combat: compile %s: %w", name, err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("combat: run %s: %w", name, err)
	}

	sb := &ScriptBehavior{Name: name, compiled: compiled}
	if compiled.IsDefined("update") && compiled.Get("update").ValueType() == "compiled-function" {
		hooked, err := compileScript(src, true)
		if err != nil {
			return nil, fmt.Errorf("combat: compile %s hook: %w", name, err)
		}
		if err := hooked.Run(); err != nil {
			return nil, fmt.Errorf("combat: run %s hook: %w", name, err)
		}
		sb.compiled = hooked
		sb.hooked = true
	}
	return sb, nil
}

func compileScript(src []byte, withHook bool) (*tengo.Compiled, error) {
	if withHook {
		src = append(append([]byte{}, src...), hookDispatch...)
	}
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if withHook {
		_ = script.Add("__phase", "")
		_ = script.Add("__engine", map[string]any{})
		_ = script.Add("__result", 1.0)
	}
	return script.Compile()
}

// Global returns the integer value of a script global.
func (s *ScriptBehavior) Global(name string) (int, bool) {
	if s == nil || s.compiled == nil || !s.compiled.IsDefined(name) {
		return 0, false
	}
	v := s.compiled.Get(name)
	if v.ValueType() != "int" {
		return 0, false
	}
	return v.Int(), true
}

// HasHook reports whether the script defines update(engine).
func (s *ScriptBehavior) HasHook() bool {
	return s != nil && s.hooked
}

// SpeedScale runs the update hook with the owner's health fraction and
// returns the movement multiplier it asks for. Scripts without a hook, and
// hooks that fail or return a non-number, report false.
func (s *ScriptBehavior) SpeedScale(healthFraction float64) (float64, bool) {
	if !s.HasHook() {
		return 1, false
	}
	engine := &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"health_fraction": &tengo.Float{Value: healthFraction},
	}}
	if err := s.compiled.Set("__phase", "update"); err != nil {
		return 1, false
	}
	if err := s.compiled.Set("__engine", engine); err != nil {
		return 1, false
	}
	if err := s.compiled.Run(); err != nil {
		return 1, false
	}

	v := s.compiled.Get("__result")
	switch v.ValueType() {
	case "float":
		return v.Float(), true
	case "int":
		return float64(v.Int()), true
	}
	return 1, false
}

var scriptHealthGlobals = []string{"current_health", "max_health", "apply_damage", "heal"}

func (s *ScriptBehavior) healthLike() bool {
	name := strings.ToLower(s.Name)
	for _, marker := range []string{"health", "vida", "hp"} {
		if strings.Contains(name, marker) {
			return true
		}
	}
	for _, g := range scriptHealthGlobals {
		if s.compiled.IsDefined(g) {
			return true
		}
	}
	return false
}

func (s *ScriptBehavior) probe(names []string) (int, bool) {
	if s == nil || s.compiled == nil || s.healthLike() {
		return 0, false
	}
	for _, name := range names {
		if n, ok := s.Global(name); ok {
			return n, true
		}
	}
	return 0, false
}
