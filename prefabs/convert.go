package prefabs

import (
	"github.com/milk9111/horde/combat"
	"github.com/milk9111/horde/stats"
	"github.com/milk9111/horde/upgrade"
	"github.com/milk9111/horde/wave"
)

// DirectorConfig maps the encounter file onto the wave director's tuning.
func (s *EncounterSpec) DirectorConfig() wave.Config {
	return wave.Config{
		Plan: wave.Plan{
			InitialCount:      s.Wave.InitialCount,
			Increment:         s.Wave.Increment,
			SpecialEnabled:    *s.Special.Enabled,
			SpecialFrequency:  s.Special.Frequency,
			SpecialMultiplier: s.Special.SpawnMultiplier,
		},
		Countdown:        s.Wave.Countdown,
		GoBanner:         s.Wave.GoBanner,
		SpawnInterval:    s.Wave.SpawnInterval,
		ClearPoll:        s.Wave.ClearPoll,
		RewardDisplay:    s.Wave.RewardDisplay,
		AutoStart:        *s.Wave.AutoStart,
		StartOnContact:   *s.Wave.StartOnContact,
		Offers:           s.Wave.Offers,
		RewardMultiplier: s.Special.RewardMultiplier,
	}
}

// SpawnerConfig returns cap and placement for the spawner.
func (s *EncounterSpec) SpawnerConfig() wave.SpawnerConfig {
	points := make([]wave.Point, 0, len(s.Arena.SpawnPoints))
	for _, p := range s.Arena.SpawnPoints {
		points = append(points, wave.Point{X: p.X, Y: p.Y})
	}
	return wave.SpawnerConfig{
		PopulationCap: s.Wave.PopulationCap,
		Points:        points,
		Origin:        wave.Point{X: s.Arena.Origin.X, Y: s.Arena.Origin.Y},
	}
}

// CatalogConfig returns the upgrade catalog tuning. healthPointValue is the
// player's max health per Health point, shown in offer descriptions.
func (s *EncounterSpec) CatalogConfig(healthPointValue int) (upgrade.CatalogConfig, error) {
	weights, err := s.UpgradeWeights()
	if err != nil {
		return upgrade.CatalogConfig{}, err
	}
	fallback, err := stats.ParseKind(s.Upgrades.Fallback)
	if err != nil {
		return upgrade.CatalogConfig{}, err
	}
	return upgrade.CatalogConfig{
		Options:          s.Wave.Offers,
		MinAmount:        s.Upgrades.MinAmount,
		MaxAmount:        s.Upgrades.MaxAmount,
		Weights:          weights,
		Fallback:         fallback,
		HealthPointValue: healthPointValue,
	}, nil
}

// ResolverOptions configures the damage resolver's legacy probe.
func (s *EncounterSpec) ResolverOptions() combat.ResolverOptions {
	return combat.ResolverOptions{
		LegacyNameProbe: *s.Damage.LegacyNameProbe,
		CandidateNames:  s.Damage.CandidateNames,
		Verbose:         s.Damage.Verbose,
	}
}

// HealthConfig maps a health block onto a tracker config.
func (h HealthSpec) HealthConfig(accept combat.Source) combat.HealthConfig {
	return combat.HealthConfig{
		MaxBase:         h.Base,
		PointValue:      h.PerPoint,
		Invulnerability: h.Invulnerability,
		ContactInterval: h.ContactInterval,
		Accept:          accept,
	}
}
