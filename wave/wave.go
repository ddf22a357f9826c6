// Package wave sequences the encounter: countdown, spawning, clearance,
// reward and upgrade, repeated with a special wave on a fixed cadence.
package wave

// Wave is the bookkeeping for one spawn-and-clear cycle.
type Wave struct {
	Index   int
	Special bool
	Quota   int
	Spawned int
	Active  int
}

// QuotaMet reports whether every entity of the wave has been spawned.
func (w Wave) QuotaMet() bool {
	return w.Spawned >= w.Quota
}

// Cleared reports whether the wave is fully spawned and nothing is left
// alive.
func (w Wave) Cleared() bool {
	return w.QuotaMet() && w.Active == 0
}

// Plan computes per-wave quotas.
type Plan struct {
	InitialCount      int
	Increment         int
	SpecialEnabled    bool
	SpecialFrequency  int
	SpecialMultiplier int
}

// IsSpecial holds every SpecialFrequency-th wave.
func (p Plan) IsSpecial(index int) bool {
	if !p.SpecialEnabled || p.SpecialFrequency <= 0 || index <= 0 {
		return false
	}
	return index%p.SpecialFrequency == 0
}

// BaseQuota is InitialCount + (index-1) × Increment.
func (p Plan) BaseQuota(index int) int {
	if index < 1 {
		index = 1
	}
	q := p.InitialCount + (index-1)*p.Increment
	if q < 0 {
		return 0
	}
	return q
}

// Quota applies the special multiplier to BaseQuota.
func (p Plan) Quota(index int) int {
	q := p.BaseQuota(index)
	if p.IsSpecial(index) && p.SpecialMultiplier > 0 {
		q *= p.SpecialMultiplier
	}
	return q
}

// Wave returns a fresh wave for index.
func (p Plan) Wave(index int) Wave {
	return Wave{Index: index, Special: p.IsSpecial(index), Quota: p.Quota(index)}
}
