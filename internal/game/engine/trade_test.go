package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTradeArgs(t *testing.T) {
	offer, demand, parsed := parseTradeArgs("offer: Baltic Avenue, Oriental Avenue; demand: Boardwalk")
	require.True(t, parsed)
	assert.Equal(t, []string{"Baltic Avenue", "Oriental Avenue"}, offer)
	assert.Equal(t, []string{"Boardwalk"}, demand)

	for _, raw := range []string{
		"",
		"Baltic Avenue for Boardwalk",
		"offer: Baltic Avenue",
		"offer: ; demand: Boardwalk",
		"demand: Boardwalk; offer: Baltic Avenue",
	} {
		_, _, parsed := parseTradeArgs(raw)
		assert.False(t, parsed, "expected %q to be rejected", raw)
	}
}

func TestTradeOfferValidatesOwnershipAndBalance(t *testing.T) {
	e := newTestEngine(t)
	startTwoPlayerGame(t, e)

	// Unequal aggregate price is rejected even when both sides are owned.
	e.session.Ownership[5] = "a"  // Reading Railroad $200
	e.session.Ownership[11] = "b" // St. Charles Place $140
	res := e.Execute(Command{Kind: CommandTradeOffer, ActorID: "a",
		RawArgs: "offer: Reading Railroad; demand: St. Charles Place"})
	assert.False(t, res.Success)
	assert.Equal(t, ErrorInvalidTradeShape, res.ErrorKind)
	assert.Nil(t, e.session.Trade)

	// Demanding a property the counterpart does not own is rejected.
	res = e.Execute(Command{Kind: CommandTradeOffer, ActorID: "a",
		RawArgs: "offer: Reading Railroad; demand: Boardwalk"})
	assert.False(t, res.Success)
	assert.Equal(t, ErrorInvalidTradeShape, res.ErrorKind)

	// Mortgaged items are not tradable.
	e.session.Ownership[15] = "b" // Pennsylvania Railroad $200
	e.session.Mortgaged[15] = true
	res = e.Execute(Command{Kind: CommandTradeOffer, ActorID: "a",
		RawArgs: "offer: Reading Railroad; demand: Pennsylvania Railroad"})
	assert.False(t, res.Success)
	assert.Equal(t, ErrorInvalidTradeShape, res.ErrorKind)
}

func TestTradeOfferRejectsUnknownProperty(t *testing.T) {
	e := newTestEngine(t)
	startTwoPlayerGame(t, e)

	res := e.Execute(Command{Kind: CommandTradeOffer, ActorID: "a",
		RawArgs: "offer: Atlantis Avenue; demand: Boardwalk"})
	assert.False(t, res.Success)
	assert.Equal(t, ErrorUnknownProperty, res.ErrorKind)
}

func TestTradeAcceptSwapsOwnershipAtomically(t *testing.T) {
	e := newTestEngine(t)
	startTwoPlayerGame(t, e)

	e.session.Ownership[5] = "a"  // Reading Railroad $200
	e.session.Ownership[15] = "b" // Pennsylvania Railroad $200

	res := e.Execute(Command{Kind: CommandTradeOffer, ActorID: "a",
		RawArgs: "offer: Reading Railroad; demand: Pennsylvania Railroad"})
	require.True(t, res.Success, "offer failed: %v", res.Messages)
	require.NotNil(t, e.session.Trade)

	// Only the designated counterpart may accept.
	res = e.Execute(Command{Kind: CommandTradeAccept, ActorID: "a"})
	assert.False(t, res.Success)
	assert.Equal(t, ErrorOutOfTurn, res.ErrorKind)
	assert.Equal(t, "a", e.session.Ownership[5])

	res = e.Execute(Command{Kind: CommandTradeAccept, ActorID: "b"})
	require.True(t, res.Success)
	assert.Equal(t, "b", e.session.Ownership[5])
	assert.Equal(t, "a", e.session.Ownership[15])
	assert.Nil(t, e.session.Trade)
}

func TestTradeAcceptWithoutPendingTrade(t *testing.T) {
	e := newTestEngine(t)
	startTwoPlayerGame(t, e)

	res := e.Execute(Command{Kind: CommandTradeAccept, ActorID: "b"})
	assert.False(t, res.Success)
	assert.Equal(t, ErrorNoPendingTrade, res.ErrorKind)
}

func TestStaleTradeIsCancelledOnAccept(t *testing.T) {
	e := newTestEngine(t)
	startTwoPlayerGame(t, e)

	e.session.Ownership[5] = "a"
	e.session.Ownership[15] = "b"
	res := e.Execute(Command{Kind: CommandTradeOffer, ActorID: "a",
		RawArgs: "offer: Reading Railroad; demand: Pennsylvania Railroad"})
	require.True(t, res.Success)

	// Ownership shifted after the proposal; accepting must not apply it.
	e.session.Ownership[5] = "b"

	res = e.Execute(Command{Kind: CommandTradeAccept, ActorID: "b"})
	assert.False(t, res.Success)
	assert.Equal(t, ErrorInvalidTradeShape, res.ErrorKind)
	assert.Nil(t, e.session.Trade)
	assert.Equal(t, "b", e.session.Ownership[5])
	assert.Equal(t, "b", e.session.Ownership[15])
}
