package component

import "time"

// TTL destroys its entity once Remaining simulated time has elapsed.
type TTL struct {
	Remaining time.Duration
}

var TTLComponent = NewComponent[TTL]()
