package upgrade

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/horde/stats"
)

func newGate(t *testing.T) (*Gate, *stats.Store) {
	t.Helper()
	store := stats.NewStore(nil, nil)
	c := NewCatalog(DefaultCatalogConfig(), rand.New(rand.NewSource(1)))
	return NewGate(c, store), store
}

func testOffers() []Offer {
	return []Offer{
		{Kind: stats.Strength, Amount: 1, Label: "Strength"},
		{Kind: stats.MoveSpeed, Amount: 2, Label: "Move Speed"},
		{Kind: stats.Scale, Amount: 3, Label: "Size"},
	}
}

func TestChooseAppliesOnlyThatOffer(t *testing.T) {
	g, store := newGate(t)
	before := store.Snapshot()

	var resolved []Offer
	g.Resolved.Subscribe(func(o Offer) { resolved = append(resolved, o) })

	require.NoError(t, g.Present(testOffers()))
	assert.True(t, g.IsPending())

	chosen, err := g.Choose(1)
	require.NoError(t, err)
	assert.Equal(t, stats.MoveSpeed, chosen.Kind)
	assert.False(t, g.IsPending())
	assert.Len(t, resolved, 1)

	after := store.Snapshot()
	for _, k := range stats.Kinds() {
		if k == stats.MoveSpeed {
			assert.Equal(t, before[k]+2, after[k])
			continue
		}
		assert.Equal(t, before[k], after[k], "%s changed", k)
	}
}

func TestSecondPresentRejected(t *testing.T) {
	g, _ := newGate(t)
	require.NoError(t, g.Present(testOffers()))

	other := []Offer{{Kind: stats.Health, Amount: 1}}
	assert.ErrorIs(t, g.Present(other), ErrGatePending)
	assert.Equal(t, testOffers(), g.Offers(), "open gate must be untouched")
}

func TestGateErrors(t *testing.T) {
	tests := []struct {
		name string
		run  func(g *Gate) error
		want error
	}{
		{"present_empty", func(g *Gate) error { return g.Present(nil) }, ErrNoOffers},
		{"choose_without_gate", func(g *Gate) error { _, err := g.Choose(0); return err }, ErrNoPendingGate},
		{"confirm_without_gate", func(g *Gate) error { _, err := g.Confirm(); return err }, ErrNoPendingGate},
		{"index_high", func(g *Gate) error {
			_ = g.Present(testOffers())
			_, err := g.Choose(3)
			return err
		}, ErrOfferIndex},
		{"index_negative", func(g *Gate) error {
			_ = g.Present(testOffers())
			_, err := g.Choose(-1)
			return err
		}, ErrOfferIndex},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, _ := newGate(t)
			assert.ErrorIs(t, tc.run(g), tc.want)
		})
	}
}

func TestBadIndexKeepsGateOpen(t *testing.T) {
	g, store := newGate(t)
	require.NoError(t, g.Present(testOffers()))
	_, err := g.Choose(7)
	require.ErrorIs(t, err, ErrOfferIndex)
	assert.True(t, g.IsPending())
	assert.Equal(t, 0, store.Get(stats.Strength))
}

func TestCursorWraps(t *testing.T) {
	g, store := newGate(t)
	require.NoError(t, g.Present(testOffers()))

	var moves []int
	g.Moved.Subscribe(func(i int) { moves = append(moves, i) })

	g.Move(-1)
	assert.Equal(t, 2, g.Cursor())
	g.Move(1)
	assert.Equal(t, 0, g.Cursor())
	g.Move(4)
	assert.Equal(t, 1, g.Cursor())
	g.Move(0)
	assert.Equal(t, []int{2, 0, 1}, moves)

	chosen, err := g.Confirm()
	require.NoError(t, err)
	assert.Equal(t, stats.MoveSpeed, chosen.Kind)
	assert.Equal(t, 2, store.Get(stats.MoveSpeed))
}

func TestDismiss(t *testing.T) {
	g, store := newGate(t)
	dismissed := 0
	g.Dismissed.Subscribe(func(struct{}) { dismissed++ })

	g.Dismiss()
	assert.Equal(t, 0, dismissed, "dismissing a closed gate is a no-op")

	require.NoError(t, g.Present(testOffers()))
	g.Dismiss()
	assert.False(t, g.IsPending())
	assert.Equal(t, 1, dismissed)
	assert.Equal(t, 0, store.Get(stats.Strength))

	require.NoError(t, g.Present(testOffers()), "a dismissed gate can reopen")
}

func TestPresentedCopiesOffers(t *testing.T) {
	g, _ := newGate(t)
	var shown []Offer
	g.Presented.Subscribe(func(o []Offer) { shown = o })

	offers := testOffers()
	require.NoError(t, g.Present(offers))
	offers[0].Amount = 99

	assert.Equal(t, 1, g.Offers()[0].Amount)
	assert.Equal(t, 1, shown[0].Amount)
}
