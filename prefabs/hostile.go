package prefabs

import (
	"time"

	"github.com/milk9111/horde/ecs/component"
)

type ProjectileSpec struct {
	Damage   int           `yaml:"damage"`
	Speed    float64       `yaml:"speed"`
	Lifetime time.Duration `yaml:"lifetime"`
	Radius   float64       `yaml:"radius"`
}

type ShooterSpec struct {
	Pattern    string         `yaml:"pattern"`
	Interval   time.Duration  `yaml:"interval"`
	Warning    time.Duration  `yaml:"warning"`
	Range      float64        `yaml:"range"`
	Count      int            `yaml:"count"`
	Spread     float64        `yaml:"spread"`
	Direction  PointSpec      `yaml:"direction"`
	Projectile ProjectileSpec `yaml:"projectile"`
}

// HostileSpec describes one kind of spawned enemy. Scripts lists legacy
// behavior scripts attached to every spawned copy.
type HostileSpec struct {
	Name          string       `yaml:"name"`
	Radius        float64      `yaml:"radius"`
	MoveSpeed     float64      `yaml:"move_speed"`
	StopDistance  float64      `yaml:"stop_distance"`
	ContactDamage int          `yaml:"contact_damage"`
	Health        HealthSpec   `yaml:"health"`
	Shooter       *ShooterSpec `yaml:"shooter"`
	Scripts       []string     `yaml:"scripts"`
}

func LoadHostileSpec(name string) (*HostileSpec, error) {
	spec, err := LoadSpec[HostileSpec](name)
	if err != nil {
		return nil, err
	}
	spec.ApplyDefaults()
	if err := spec.Validate(name); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *HostileSpec) ApplyDefaults() {
	if s.Radius == 0 {
		s.Radius = 12
	}
	s.Health.applyDefaults(30)
	if s.Health.ContactInterval == 0 {
		s.Health.ContactInterval = 100 * time.Millisecond
	}
	if sh := s.Shooter; sh != nil {
		if sh.Pattern == "" {
			sh.Pattern = string(component.PatternAimed)
		}
		if sh.Interval == 0 {
			sh.Interval = 2 * time.Second
		}
		if sh.Range == 0 {
			sh.Range = 480
		}
		if sh.Spread == 0 {
			sh.Spread = 15
		}
		p := &sh.Projectile
		if p.Damage == 0 {
			p.Damage = 10
		}
		if p.Speed == 0 {
			p.Speed = 240
		}
		if p.Lifetime == 0 {
			p.Lifetime = 5 * time.Second
		}
		if p.Radius == 0 {
			p.Radius = 4
		}
	}
}

func (s *HostileSpec) Validate(file string) error {
	if s.Name == "" {
		return invalid(file, "name", "is required")
	}
	if s.Radius <= 0 {
		return invalid(file, "radius", "must be positive")
	}
	if s.ContactDamage < 0 {
		return invalid(file, "contact_damage", "must not be negative")
	}
	if err := s.Health.validate(file); err != nil {
		return err
	}
	if sh := s.Shooter; sh != nil {
		switch component.ShotPattern(sh.Pattern) {
		case component.PatternAimed, component.PatternBurst, component.PatternCircular, component.PatternFixed:
		default:
			return invalid(file, "shooter.pattern", "unknown pattern %q", sh.Pattern)
		}
		if sh.Interval <= 0 || sh.Warning < 0 || sh.Warning > sh.Interval {
			return invalid(file, "shooter", "warning %s must fit inside interval %s", sh.Warning, sh.Interval)
		}
	}
	return nil
}
