package component

// PlayerTag marks the controlled entity.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// HostileTag marks hostiles and everything they own that hurts the player.
type HostileTag struct{}

var HostileTagComponent = NewComponent[HostileTag]()

// AttackTag marks player-issued attacks; hostiles only take damage from
// contacts carrying it somewhere in their lineage.
type AttackTag struct{}

var AttackTagComponent = NewComponent[AttackTag]()

// WaveTrigger marks the zone whose first contact with the player starts the
// encounter.
type WaveTrigger struct{}

var WaveTriggerComponent = NewComponent[WaveTrigger]()
