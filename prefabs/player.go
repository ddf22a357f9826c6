package prefabs

import (
	"time"

	"github.com/milk9111/horde/stats"
)

type MovementSpec struct {
	BaseSpeed float64 `yaml:"base_speed"`
	PerPoint  float64 `yaml:"per_point"`
}

type WeaponSpec struct {
	BaseDamage          int           `yaml:"base_damage"`
	DamagePerStrength   int           `yaml:"damage_per_strength"`
	BaseDelay           time.Duration `yaml:"base_delay"`
	DelayPerAttackSpeed time.Duration `yaml:"delay_per_attack_speed"`
	DelayPerCooldown    time.Duration `yaml:"delay_per_cooldown"`
	MinDelay            time.Duration `yaml:"min_delay"`
	Reach               float64       `yaml:"reach"`
	Radius              float64       `yaml:"radius"`
	RadiusPerScale      float64       `yaml:"radius_per_scale"`
	Duration            time.Duration `yaml:"duration"`
}

// PlayerSpec describes the controlled entity.
type PlayerSpec struct {
	Name       string                   `yaml:"name"`
	Radius     float64                  `yaml:"radius"`
	Movement   MovementSpec             `yaml:"movement"`
	Health     HealthSpec               `yaml:"health"`
	Attributes map[string]AttributeSpec `yaml:"attributes"`
	Weapon     WeaponSpec               `yaml:"weapon"`
}

func LoadPlayerSpec(name string) (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](name)
	if err != nil {
		return nil, err
	}
	spec.ApplyDefaults()
	if err := spec.Validate(name); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *PlayerSpec) ApplyDefaults() {
	if s.Radius == 0 {
		s.Radius = 14
	}
	if s.Movement.BaseSpeed == 0 {
		s.Movement.BaseSpeed = 120
	}
	s.Health.applyDefaults(50)
	if s.Health.PerPoint == 0 {
		s.Health.PerPoint = 10
	}
	if s.Health.Invulnerability == 0 {
		s.Health.Invulnerability = 500 * time.Millisecond
	}
	if s.Health.ContactInterval == 0 {
		s.Health.ContactInterval = 100 * time.Millisecond
	}

	wp := &s.Weapon
	if wp.BaseDamage == 0 {
		wp.BaseDamage = 10
	}
	if wp.BaseDelay == 0 {
		wp.BaseDelay = time.Second
	}
	if wp.MinDelay == 0 {
		wp.MinDelay = 200 * time.Millisecond
	}
	if wp.Radius == 0 {
		wp.Radius = 24
	}
	if wp.Duration == 0 {
		wp.Duration = 200 * time.Millisecond
	}
}

func (s *PlayerSpec) Validate(file string) error {
	if s.Radius <= 0 {
		return invalid(file, "radius", "must be positive")
	}
	if err := s.Health.validate(file); err != nil {
		return err
	}
	for name, attr := range s.Attributes {
		if _, err := stats.ParseKind(name); err != nil {
			return invalid(file, "attributes", "%v", err)
		}
		if attr.Cap < 0 {
			return invalid(file, "attributes."+name+".cap", "must not be negative")
		}
	}
	if s.Weapon.MinDelay <= 0 || s.Weapon.BaseDelay < s.Weapon.MinDelay {
		return invalid(file, "weapon", "base_delay %s must be at least min_delay %s", s.Weapon.BaseDelay, s.Weapon.MinDelay)
	}
	if s.Weapon.Duration <= 0 {
		return invalid(file, "weapon.duration", "must be positive")
	}
	return nil
}

// AttributeTables splits the attribute table into initial values and caps.
func (s *PlayerSpec) AttributeTables() (initial, caps map[stats.Kind]int, err error) {
	initial = make(map[stats.Kind]int, len(s.Attributes))
	caps = make(map[stats.Kind]int, len(s.Attributes))
	for name, attr := range s.Attributes {
		k, err := stats.ParseKind(name)
		if err != nil {
			return nil, nil, err
		}
		initial[k] = attr.Initial
		caps[k] = attr.Cap
	}
	return initial, caps, nil
}
