package stats

import (
	"fmt"
	"strings"
)

// Kind names one numeric attribute.
type Kind int

// Declaration order is the fixed enumeration order used by upgrade sampling.
const (
	Strength Kind = iota
	AttackSpeed
	Scale
	MoveSpeed
	Cooldown
	Health

	kindCount
)

var kindNames = [kindCount]string{
	Strength:    "strength",
	AttackSpeed: "attack_speed",
	Scale:       "scale",
	MoveSpeed:   "move_speed",
	Cooldown:    "cooldown",
	Health:      "health",
}

// Kinds returns every kind in enumeration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Strength; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) Valid() bool {
	return k >= Strength && k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Floor is the lowest value a kind may hold.
func (k Kind) Floor() int {
	if k == Health {
		return 1
	}
	return 0
}

// ParseKind accepts the snake_case names used in prefab files.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k := Strength; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("stats: unknown kind %q", s)
}
