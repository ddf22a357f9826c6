package prefabs

import (
	"fmt"
	"time"

	"github.com/milk9111/horde/stats"
)

type WaveSpec struct {
	InitialCount   int           `yaml:"initial_count"`
	Increment      int           `yaml:"increment"`
	PopulationCap  int           `yaml:"population_cap"`
	SpawnInterval  time.Duration `yaml:"spawn_interval"`
	Countdown      time.Duration `yaml:"countdown"`
	GoBanner       time.Duration `yaml:"go_banner"`
	ClearPoll      time.Duration `yaml:"clear_poll"`
	RewardDisplay  time.Duration `yaml:"reward_display"`
	AutoStart      *bool         `yaml:"auto_start"`
	StartOnContact *bool         `yaml:"start_on_contact"`
	Offers         int           `yaml:"offers"`
}

type SpecialSpec struct {
	Enabled          *bool   `yaml:"enabled"`
	Frequency        int     `yaml:"frequency"`
	SpawnMultiplier  int     `yaml:"spawn_multiplier"`
	RewardMultiplier float64 `yaml:"reward_multiplier"`
}

type UpgradeSpec struct {
	MinAmount int            `yaml:"min_amount"`
	MaxAmount int            `yaml:"max_amount"`
	Weights   map[string]int `yaml:"weights"`
	Fallback  string         `yaml:"fallback"`
}

type DamageSpec struct {
	LegacyNameProbe *bool    `yaml:"legacy_name_probe"`
	CandidateNames  []string `yaml:"candidate_names"`
	Verbose         bool     `yaml:"verbose"`
}

type TriggerSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

type ArenaSpec struct {
	Width       float64     `yaml:"width"`
	Height      float64     `yaml:"height"`
	Origin      PointSpec   `yaml:"origin"`
	PlayerStart PointSpec   `yaml:"player_start"`
	SpawnPoints []PointSpec `yaml:"spawn_points"`
	Trigger     TriggerSpec `yaml:"trigger"`
}

// EncounterSpec is the top-level encounter file.
type EncounterSpec struct {
	Name            string      `yaml:"name"`
	Wave            WaveSpec    `yaml:"wave"`
	Special         SpecialSpec `yaml:"special"`
	Upgrades        UpgradeSpec `yaml:"upgrades"`
	Damage          DamageSpec  `yaml:"damage"`
	Arena           ArenaSpec   `yaml:"arena"`
	Player          string      `yaml:"player"`
	Hostiles        []string    `yaml:"hostiles"`
	SpecialHostiles []string    `yaml:"special_hostiles"`
}

func LoadEncounterSpec(name string) (*EncounterSpec, error) {
	spec, err := LoadSpec[EncounterSpec](name)
	if err != nil {
		return nil, err
	}
	spec.ApplyDefaults()
	if err := spec.Validate(name); err != nil {
		return nil, err
	}
	return &spec, nil
}

func boolPtr(v bool) *bool {
	return &v
}

// ApplyDefaults fills zero fields with the stock tuning.
func (s *EncounterSpec) ApplyDefaults() {
	w := &s.Wave
	if w.InitialCount == 0 {
		w.InitialCount = 10
	}
	if w.Increment == 0 {
		w.Increment = 5
	}
	if w.PopulationCap == 0 {
		w.PopulationCap = 10
	}
	if w.SpawnInterval == 0 {
		w.SpawnInterval = 2 * time.Second
	}
	if w.Countdown == 0 {
		w.Countdown = 5 * time.Second
	}
	if w.GoBanner == 0 {
		w.GoBanner = time.Second
	}
	if w.ClearPoll == 0 {
		w.ClearPoll = 500 * time.Millisecond
	}
	if w.RewardDisplay == 0 {
		w.RewardDisplay = 3 * time.Second
	}
	if w.AutoStart == nil {
		w.AutoStart = boolPtr(true)
	}
	if w.StartOnContact == nil {
		w.StartOnContact = boolPtr(true)
	}
	if w.Offers == 0 {
		w.Offers = 3
	}

	sp := &s.Special
	if sp.Enabled == nil {
		sp.Enabled = boolPtr(true)
	}
	if sp.Frequency == 0 {
		sp.Frequency = 5
	}
	if sp.SpawnMultiplier == 0 {
		sp.SpawnMultiplier = 2
	}
	if sp.RewardMultiplier == 0 {
		sp.RewardMultiplier = 1.5
	}

	u := &s.Upgrades
	if u.MinAmount == 0 {
		u.MinAmount = 1
	}
	if u.MaxAmount == 0 {
		u.MaxAmount = 3
	}
	if len(u.Weights) == 0 {
		u.Weights = map[string]int{
			"strength":     10,
			"attack_speed": 10,
			"scale":        8,
			"move_speed":   10,
			"cooldown":     8,
			"health":       12,
		}
	}
	if u.Fallback == "" {
		u.Fallback = "strength"
	}

	if s.Damage.LegacyNameProbe == nil {
		s.Damage.LegacyNameProbe = boolPtr(true)
	}
	if s.Player == "" {
		s.Player = "player.yaml"
	}
	if s.Arena.Trigger.Radius == 0 {
		s.Arena.Trigger.Radius = 40
	}
}

// Validate rejects values the simulation cannot run with.
func (s *EncounterSpec) Validate(file string) error {
	w := s.Wave
	if w.InitialCount < 1 {
		return invalid(file, "wave.initial_count", "must be at least 1, got %d", w.InitialCount)
	}
	if w.Increment < 0 {
		return invalid(file, "wave.increment", "must not be negative, got %d", w.Increment)
	}
	if w.PopulationCap < 1 {
		return invalid(file, "wave.population_cap", "must be at least 1, got %d", w.PopulationCap)
	}
	for field, d := range map[string]time.Duration{
		"wave.spawn_interval": w.SpawnInterval,
		"wave.countdown":      w.Countdown,
		"wave.clear_poll":     w.ClearPoll,
		"wave.reward_display": w.RewardDisplay,
	} {
		if d <= 0 {
			return invalid(file, field, "must be positive, got %s", d)
		}
	}
	if w.GoBanner < 0 {
		return invalid(file, "wave.go_banner", "must not be negative")
	}
	if w.Offers < 1 {
		return invalid(file, "wave.offers", "must be at least 1, got %d", w.Offers)
	}

	if s.Special.Frequency < 0 || s.Special.SpawnMultiplier < 0 || s.Special.RewardMultiplier < 0 {
		return invalid(file, "special", "values must not be negative")
	}

	u := s.Upgrades
	if u.MinAmount < 0 || u.MaxAmount < u.MinAmount {
		return invalid(file, "upgrades", "amount range [%d, %d] is empty", u.MinAmount, u.MaxAmount)
	}
	total := 0
	for name, weight := range u.Weights {
		if _, err := stats.ParseKind(name); err != nil {
			return invalid(file, "upgrades.weights", "%v", err)
		}
		if weight < 0 {
			return invalid(file, "upgrades.weights."+name, "must not be negative")
		}
		total += weight
	}
	if total == 0 {
		return invalid(file, "upgrades.weights", "at least one weight must be positive")
	}
	if _, err := stats.ParseKind(u.Fallback); err != nil {
		return invalid(file, "upgrades.fallback", "%v", err)
	}

	if len(s.Hostiles) == 0 {
		return invalid(file, "hostiles", "at least one hostile prefab is required")
	}
	if s.Arena.Trigger.Radius < 0 {
		return invalid(file, "arena.trigger.radius", "must not be negative")
	}
	return nil
}

// UpgradeWeights converts the weight table to stat kinds.
func (s *EncounterSpec) UpgradeWeights() (map[stats.Kind]int, error) {
	out := make(map[stats.Kind]int, len(s.Upgrades.Weights))
	for name, weight := range s.Upgrades.Weights {
		k, err := stats.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("prefabs: upgrade weights: %w", err)
		}
		out[k] = weight
	}
	return out, nil
}
