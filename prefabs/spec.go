package prefabs

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("prefabs: invalid config")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func invalid(file, field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s: %s", ErrInvalidConfig, file, field, fmt.Sprintf(format, args...))
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type AttributeSpec struct {
	Initial int `yaml:"initial"`
	Cap     int `yaml:"cap"`
}

type HealthSpec struct {
	Base            int           `yaml:"base"`
	PerPoint        int           `yaml:"per_point"`
	Invulnerability time.Duration `yaml:"invulnerability"`
	ContactInterval time.Duration `yaml:"contact_interval"`
}

func (h *HealthSpec) applyDefaults(base int) {
	if h.Base == 0 {
		h.Base = base
	}
}

func (h HealthSpec) validate(file string) error {
	if h.Base < 1 {
		return invalid(file, "health.base", "must be at least 1, got %d", h.Base)
	}
	if h.PerPoint < 0 {
		return invalid(file, "health.per_point", "must not be negative")
	}
	if h.Invulnerability < 0 || h.ContactInterval < 0 {
		return invalid(file, "health", "durations must not be negative")
	}
	return nil
}
