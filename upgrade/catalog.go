// Package upgrade generates stat upgrade offers between waves and holds the
// choice barrier the wave director waits on.
package upgrade

import (
	"fmt"
	"math/rand"

	"github.com/milk9111/horde/event"
	"github.com/milk9111/horde/stats"
)

// Offer is one proposed stat increase.
type Offer struct {
	Kind        stats.Kind
	Amount      int
	Label       string
	Description string
}

type CatalogConfig struct {
	Options   int
	MinAmount int
	MaxAmount int
	Weights   map[stats.Kind]int
	// Fallback is offered when every weighted kind is already used.
	Fallback stats.Kind
	// HealthPointValue is shown in the Health description.
	HealthPointValue int
}

// DefaultCatalogConfig returns the stock weights and ranges.
func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		Options:   3,
		MinAmount: 1,
		MaxAmount: 3,
		Weights: map[stats.Kind]int{
			stats.Strength:    10,
			stats.AttackSpeed: 10,
			stats.Scale:       8,
			stats.MoveSpeed:   10,
			stats.Cooldown:    8,
			stats.Health:      12,
		},
		Fallback:         stats.Strength,
		HealthPointValue: 10,
	}
}

// Catalog draws offers with weighted sampling without replacement.
type Catalog struct {
	cfg CatalogConfig
	rng *rand.Rand

	Generated event.Signal[[]Offer]
	Selected  event.Signal[Offer]
}

func NewCatalog(cfg CatalogConfig, rng *rand.Rand) *Catalog {
	if cfg.MaxAmount < cfg.MinAmount {
		cfg.MaxAmount = cfg.MinAmount
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Catalog{cfg: cfg, rng: rng}
}

func (c *Catalog) Config() CatalogConfig {
	return c.cfg
}

// SetConfig replaces the tuning used by later draws.
func (c *Catalog) SetConfig(cfg CatalogConfig) {
	if cfg.MaxAmount < cfg.MinAmount {
		cfg.MaxAmount = cfg.MinAmount
	}
	c.cfg = cfg
}

// GenerateOffers returns n offers with distinct kinds while weighted kinds
// remain, then falls back to the fallback kind.
func (c *Catalog) GenerateOffers(n int) []Offer {
	if n <= 0 {
		n = c.cfg.Options
	}
	remaining := stats.Kinds()
	offers := make([]Offer, 0, n)
	for i := 0; i < n; i++ {
		kind, ok := c.PickKind(remaining)
		if ok {
			remaining = without(remaining, kind)
		} else {
			kind = c.cfg.Fallback
		}
		offers = append(offers, c.newOffer(kind, c.amount()))
	}
	c.Generated.Emit(offers)
	return offers
}

// PickKind draws one kind from candidates by weight. It returns false when
// no candidate has a positive weight.
func (c *Catalog) PickKind(candidates []stats.Kind) (stats.Kind, bool) {
	total := 0
	for _, k := range candidates {
		if w := c.cfg.Weights[k]; w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0, false
	}

	draw := c.rng.Intn(total)
	acc := 0
	for _, k := range ordered(candidates) {
		w := c.cfg.Weights[k]
		if w <= 0 {
			continue
		}
		acc += w
		if draw < acc {
			return k, true
		}
	}
	return 0, false
}

// Apply adds the offer to target and notifies Selected.
func (c *Catalog) Apply(o Offer, target *stats.Store) {
	if target == nil {
		return
	}
	target.Modify(o.Kind, o.Amount)
	c.Selected.Emit(o)
}

func (c *Catalog) amount() int {
	return c.cfg.MinAmount + c.rng.Intn(c.cfg.MaxAmount-c.cfg.MinAmount+1)
}

func (c *Catalog) newOffer(kind stats.Kind, amount int) Offer {
	return Offer{
		Kind:        kind,
		Amount:      amount,
		Label:       Label(kind),
		Description: c.describe(kind, amount),
	}
}

// Label returns a display name for kind.
func Label(kind stats.Kind) string {
	switch kind {
	case stats.Strength:
		return "Strength"
	case stats.AttackSpeed:
		return "Attack Speed"
	case stats.Scale:
		return "Size"
	case stats.MoveSpeed:
		return "Move Speed"
	case stats.Cooldown:
		return "Cooldown"
	case stats.Health:
		return "Vitality"
	}
	return kind.String()
}

func (c *Catalog) describe(kind stats.Kind, amount int) string {
	switch kind {
	case stats.Strength:
		return fmt.Sprintf("+%d damage per hit", amount)
	case stats.AttackSpeed:
		return fmt.Sprintf("+%d attack speed", amount)
	case stats.Scale:
		return fmt.Sprintf("+%d weapon reach", amount)
	case stats.MoveSpeed:
		return fmt.Sprintf("+%d movement speed", amount)
	case stats.Cooldown:
		return fmt.Sprintf("-%d cooldown", amount)
	case stats.Health:
		return fmt.Sprintf("+%d max health", amount*c.cfg.HealthPointValue)
	}
	return fmt.Sprintf("+%d %s", amount, kind)
}

// ordered keeps enumeration order regardless of how candidates were built.
func ordered(kinds []stats.Kind) []stats.Kind {
	out := make([]stats.Kind, 0, len(kinds))
	for _, k := range stats.Kinds() {
		for _, c := range kinds {
			if c == k {
				out = append(out, k)
				break
			}
		}
	}
	return out
}

func without(kinds []stats.Kind, drop stats.Kind) []stats.Kind {
	out := make([]stats.Kind, 0, len(kinds))
	for _, k := range kinds {
		if k != drop {
			out = append(out, k)
		}
	}
	return out
}
