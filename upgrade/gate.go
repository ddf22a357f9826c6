package upgrade

import (
	"errors"
	"log"

	"github.com/milk9111/horde/event"
	"github.com/milk9111/horde/stats"
)

var (
	ErrGatePending   = errors.New("upgrade: a choice is already pending")
	ErrNoPendingGate = errors.New("upgrade: no choice pending")
	ErrNoOffers      = errors.New("upgrade: no offers to present")
	ErrOfferIndex    = errors.New("upgrade: offer index out of range")
)

// Gate is the choice barrier between waves. Present opens it; a UI commits
// one offer through Confirm or Choose, which applies it to the target store
// and closes the gate. Callers poll IsPending instead of blocking.
type Gate struct {
	catalog *Catalog
	target  *stats.Store

	pending bool
	offers  []Offer
	cursor  int

	Presented event.Signal[[]Offer]
	Moved     event.Signal[int]
	Resolved  event.Signal[Offer]
	Dismissed event.Signal[struct{}]
}

func NewGate(catalog *Catalog, target *stats.Store) *Gate {
	return &Gate{catalog: catalog, target: target}
}

// SetTarget changes the store chosen offers are applied to.
func (g *Gate) SetTarget(target *stats.Store) {
	g.target = target
}

func (g *Gate) IsPending() bool {
	return g.pending
}

// Offers returns a copy of the pending offers.
func (g *Gate) Offers() []Offer {
	return append([]Offer(nil), g.offers...)
}

// Cursor is the index navigation currently highlights.
func (g *Gate) Cursor() int {
	return g.cursor
}

// Present opens the gate with offers. A second Present while pending is
// rejected and leaves the open gate untouched.
func (g *Gate) Present(offers []Offer) error {
	if g.pending {
		log.Printf("upgrade: present ignored, %d offers still pending", len(g.offers))
		return ErrGatePending
	}
	if len(offers) == 0 {
		log.Printf("upgrade: present ignored, no offers")
		return ErrNoOffers
	}
	g.offers = append([]Offer(nil), offers...)
	g.cursor = 0
	g.pending = true
	g.Presented.Emit(g.Offers())
	return nil
}

// Move shifts the cursor by delta, wrapping at both ends.
func (g *Gate) Move(delta int) {
	if !g.pending || delta == 0 {
		return
	}
	n := len(g.offers)
	g.cursor = ((g.cursor+delta)%n + n) % n
	g.Moved.Emit(g.cursor)
}

// Confirm commits the highlighted offer.
func (g *Gate) Confirm() (Offer, error) {
	return g.Choose(g.cursor)
}

// Choose commits offers[index].
func (g *Gate) Choose(index int) (Offer, error) {
	if !g.pending {
		return Offer{}, ErrNoPendingGate
	}
	if index < 0 || index >= len(g.offers) {
		return Offer{}, ErrOfferIndex
	}

	chosen := g.offers[index]
	if g.catalog != nil && g.target != nil {
		g.catalog.Apply(chosen, g.target)
	} else {
		log.Printf("upgrade: %s chosen with no catalog or target, nothing applied", chosen.Label)
	}
	g.close()
	g.Resolved.Emit(chosen)
	return chosen, nil
}

// Dismiss closes a pending gate without applying anything.
func (g *Gate) Dismiss() {
	if !g.pending {
		return
	}
	g.close()
	g.Dismissed.Emit(struct{}{})
}

func (g *Gate) close() {
	g.pending = false
	g.offers = nil
	g.cursor = 0
}
