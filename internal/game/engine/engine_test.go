package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/monopolybot/backend/internal/game/board"
	"github.com/monopolybot/backend/internal/game/deck"
	"github.com/monopolybot/backend/internal/game/models"
)

// scriptedDice replays a fixed sequence of rolls so tests land on
// known squares.
type scriptedDice struct {
	rolls [][2]int
	next  int
}

func (d *scriptedDice) Roll() (int, int) {
	roll := d.rolls[d.next%len(d.rolls)]
	d.next++
	return roll[0], roll[1]
}

func newTestEngine(t *testing.T, rolls ...[2]int) *Engine {
	t.Helper()

	b, err := board.Standard()
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	chance, err := deck.Chance(rng)
	require.NoError(t, err)
	chest, err := deck.CommunityChest(rng)
	require.NoError(t, err)

	dice := Dice(&scriptedDice{rolls: [][2]int{{1, 1}}})
	if len(rolls) > 0 {
		dice = &scriptedDice{rolls: rolls}
	}

	logger := zap.NewNop().Sugar()
	return New(b, chance, chest, DefaultRules(), dice, logger)
}

func join(t *testing.T, e *Engine, id, name string) {
	t.Helper()
	res := e.Execute(Command{Kind: CommandJoin, ActorID: id, ActorName: name})
	require.True(t, res.Success, "join failed: %v", res.Messages)
}

func startTwoPlayerGame(t *testing.T, e *Engine) {
	t.Helper()
	join(t, e, "a", "Alice")
	join(t, e, "b", "Bob")
	res := e.Execute(Command{Kind: CommandStart, ActorID: "a"})
	require.True(t, res.Success, "start failed: %v", res.Messages)
}

func TestJoinRejectsDuplicateAndStartedGame(t *testing.T) {
	e := newTestEngine(t)

	join(t, e, "a", "Alice")
	res := e.Execute(Command{Kind: CommandJoin, ActorID: "a", ActorName: "Alice"})
	assert.False(t, res.Success)
	assert.Equal(t, ErrorDuplicatePlayer, res.ErrorKind)

	join(t, e, "b", "Bob")
	res = e.Execute(Command{Kind: CommandStart, ActorID: "a"})
	require.True(t, res.Success)

	res = e.Execute(Command{Kind: CommandJoin, ActorID: "c", ActorName: "Carol"})
	assert.False(t, res.Success)
	assert.Equal(t, ErrorAlreadyStarted, res.ErrorKind)
}

func TestStartRequiresMinimumPlayers(t *testing.T) {
	e := newTestEngine(t)

	join(t, e, "a", "Alice")
	res := e.Execute(Command{Kind: CommandStart, ActorID: "a"})
	assert.False(t, res.Success)
	assert.Equal(t, ErrorNotEnoughPlayers, res.ErrorKind)
	assert.Equal(t, models.PhaseWaiting, e.session.Phase)
}

func TestGameplayRejectedBeforeStart(t *testing.T) {
	e := newTestEngine(t)
	join(t, e, "a", "Alice")

	res := e.Execute(Command{Kind: CommandRoll, ActorID: "a"})
	assert.False(t, res.Success)
	assert.Equal(t, ErrorNotStarted, res.ErrorKind)
}

func TestRollMovesModuloBoardLength(t *testing.T) {
	e := newTestEngine(t, [2]int{1, 2})
	startTwoPlayerGame(t, e)

	alice := e.session.playerByID("a")
	alice.Position = 38
	cashBefore := alice.Cash

	res := e.Execute(Command{Kind: CommandRoll, ActorID: "a"})
	require.True(t, res.Success)

	// 38 + 3 wraps to 1 and credits the GO reward exactly once.
	assert.Equal(t, 1, alice.Position)
	assert.Equal(t, cashBefore+e.rules.GoReward, alice.Cash)
	// Mediterranean Avenue is unowned and affordable, so a buy offer is
	// pending and the turn has not advanced.
	require.NotNil(t, e.session.Pending)
	assert.Equal(t, "a", e.session.Pending.PlayerID)
	assert.Equal(t, "a", e.session.currentPlayer().ID)
}

func TestNoGoRewardWithoutWrap(t *testing.T) {
	e := newTestEngine(t, [2]int{1, 2})
	startTwoPlayerGame(t, e)

	alice := e.session.playerByID("a")
	cashBefore := alice.Cash

	res := e.Execute(Command{Kind: CommandRoll, ActorID: "a"})
	require.True(t, res.Success)

	// Landed on Baltic Avenue (index 3); offer pending, no reward.
	assert.Equal(t, 3, alice.Position)
	assert.Equal(t, cashBefore, alice.Cash)
	require.NotNil(t, e.session.Pending)
}

func TestBuyAndRentScenario(t *testing.T) {
	e := newTestEngine(t, [2]int{1, 2})
	startTwoPlayerGame(t, e)

	alice := e.session.playerByID("a")
	bob := e.session.playerByID("b")

	// Alice lands on Baltic Avenue ($60) and buys it.
	res := e.Execute(Command{Kind: CommandRoll, ActorID: "a"})
	require.True(t, res.Success)
	res = e.Execute(Command{Kind: CommandBuy, ActorID: "a"})
	require.True(t, res.Success)

	assert.Equal(t, 1440, alice.Cash)
	assert.Equal(t, "a", e.session.Ownership[3])
	assert.Equal(t, "b", e.session.currentPlayer().ID)

	// Bob lands on the same square and pays the listed rent ($4).
	res = e.Execute(Command{Kind: CommandRoll, ActorID: "b"})
	require.True(t, res.Success)

	assert.Equal(t, 1496, bob.Cash)
	assert.Equal(t, 1444, alice.Cash)
	assert.Equal(t, "a", e.session.currentPlayer().ID)
}

func TestBuyIsAtomicOnExactAndInsufficientFunds(t *testing.T) {
	e := newTestEngine(t)
	startTwoPlayerGame(t, e)

	alice := e.session.playerByID("a")
	// Reading Railroad, index 5, $200.
	alice.Position = 5
	e.session.Pending = &PendingOffer{PlayerID: "a", SquareIndex: 5}

	alice.Cash = 199
	res := e.Execute(Command{Kind: CommandBuy, ActorID: "a"})
	assert.False(t, res.Success)
	assert.Equal(t, ErrorInsufficientFunds, res.ErrorKind)
	_, owned := e.session.Ownership[5]
	assert.False(t, owned)
	assert.Equal(t, 199, alice.Cash)

	alice.Cash = 200
	res = e.Execute(Command{Kind: CommandBuy, ActorID: "a"})
	require.True(t, res.Success)
	assert.Equal(t, 0, alice.Cash)
	assert.Equal(t, "a", e.session.Ownership[5])
}

func TestBuyWithoutPendingOffer(t *testing.T) {
	e := newTestEngine(t)
	startTwoPlayerGame(t, e)

	res := e.Execute(Command{Kind: CommandBuy, ActorID: "a"})
	assert.False(t, res.Success)
	assert.Equal(t, ErrorNoPendingOffer, res.ErrorKind)
}

func TestEndForfeitsPendingOffer(t *testing.T) {
	e := newTestEngine(t, [2]int{1, 2})
	startTwoPlayerGame(t, e)

	res := e.Execute(Command{Kind: CommandRoll, ActorID: "a"})
	require.True(t, res.Success)
	require.NotNil(t, e.session.Pending)

	res = e.Execute(Command{Kind: CommandEnd, ActorID: "a"})
	require.True(t, res.Success)
	assert.Nil(t, e.session.Pending)
	assert.Equal(t, "b", e.session.currentPlayer().ID)

	// The offer was forfeited, not executed.
	_, owned := e.session.Ownership[3]
	assert.False(t, owned)
}

func TestPendingOfferBlocksRollAndSell(t *testing.T) {
	e := newTestEngine(t, [2]int{1, 2})
	startTwoPlayerGame(t, e)

	alice := e.session.playerByID("a")
	e.session.Ownership[1] = "a" // Mediterranean Avenue, sellable in principle
	cashBefore := alice.Cash

	// Alice lands on Baltic Avenue (unowned, affordable) and gets an offer.
	res := e.Execute(Command{Kind: CommandRoll, ActorID: "a"})
	require.True(t, res.Success)
	require.NotNil(t, e.session.Pending)
	assert.Equal(t, 3, e.session.Pending.SquareIndex)

	// Rolling again while the offer is open is rejected.
	res = e.Execute(Command{Kind: CommandRoll, ActorID: "a"})
	assert.False(t, res.Success)
	assert.Equal(t, ErrorOfferPending, res.ErrorKind)

	// So is selling, even a property she does own.
	res = e.Execute(Command{Kind: CommandSell, ActorID: "a", RawArgs: "Mediterranean Avenue"})
	assert.False(t, res.Success)
	assert.Equal(t, ErrorOfferPending, res.ErrorKind)

	// Nothing moved: same offer, same turn, same holdings, same cash.
	require.NotNil(t, e.session.Pending)
	assert.Equal(t, "a", e.session.Pending.PlayerID)
	assert.Equal(t, 3, e.session.Pending.SquareIndex)
	assert.Equal(t, "a", e.session.currentPlayer().ID)
	assert.Equal(t, 3, alice.Position)
	assert.Equal(t, "a", e.session.Ownership[1])
	_, owned := e.session.Ownership[3]
	assert.False(t, owned)
	assert.Equal(t, cashBefore, alice.Cash)
}

func TestUnaffordableLandingMakesNoOffer(t *testing.T) {
	e := newTestEngine(t, [2]int{1, 2})
	startTwoPlayerGame(t, e)

	alice := e.session.playerByID("a")
	alice.Cash = 10 // Baltic Avenue costs $60

	res := e.Execute(Command{Kind: CommandRoll, ActorID: "a"})
	require.True(t, res.Success)

	// No offer is created and the turn passes on.
	assert.Nil(t, e.session.Pending)
	assert.Equal(t, "b", e.session.currentPlayer().ID)
	assert.Equal(t, 10, alice.Cash)
	_, owned := e.session.Ownership[3]
	assert.False(t, owned)
}

func TestOutOfTurnCommandsAreIdempotentRejections(t *testing.T) {
	e := newTestEngine(t)
	startTwoPlayerGame(t, e)

	for i := 0; i < 3; i++ {
		res := e.Execute(Command{Kind: CommandEnd, ActorID: "b"})
		assert.False(t, res.Success)
		assert.Equal(t, ErrorOutOfTurn, res.ErrorKind)
		assert.Equal(t, "a", e.session.currentPlayer().ID)
	}
}

func TestSellCreditsPriceAndClearsOwnership(t *testing.T) {
	e := newTestEngine(t)
	startTwoPlayerGame(t, e)

	alice := e.session.playerByID("a")
	e.session.Ownership[3] = "a" // Baltic Avenue, $60
	cashBefore := alice.Cash

	res := e.Execute(Command{Kind: CommandSell, ActorID: "a", RawArgs: "baltic avenue"})
	require.True(t, res.Success)

	assert.Equal(t, cashBefore+60, alice.Cash)
	_, owned := e.session.Ownership[3]
	assert.False(t, owned)
	assert.Equal(t, "b", e.session.currentPlayer().ID)
}

func TestSellRejectsUnknownUnownedAndMortgaged(t *testing.T) {
	e := newTestEngine(t)
	startTwoPlayerGame(t, e)

	res := e.Execute(Command{Kind: CommandSell, ActorID: "a", RawArgs: "Atlantis Avenue"})
	assert.Equal(t, ErrorUnknownProperty, res.ErrorKind)

	res = e.Execute(Command{Kind: CommandSell, ActorID: "a", RawArgs: "Baltic Avenue"})
	assert.Equal(t, ErrorNotOwned, res.ErrorKind)

	e.session.Ownership[3] = "a"
	e.session.Mortgaged[3] = true
	res = e.Execute(Command{Kind: CommandSell, ActorID: "a", RawArgs: "Baltic Avenue"})
	assert.Equal(t, ErrorMortgaged, res.ErrorKind)
	assert.Equal(t, "a", e.session.Ownership[3])
}

func TestTaxDebitsFixedAmount(t *testing.T) {
	e := newTestEngine(t, [2]int{1, 2})
	startTwoPlayerGame(t, e)

	alice := e.session.playerByID("a")
	alice.Position = 1 // Income Tax is at index 4
	res := e.Execute(Command{Kind: CommandRoll, ActorID: "a"})
	require.True(t, res.Success)

	assert.Equal(t, 4, alice.Position)
	assert.Equal(t, 1300, alice.Cash)
	assert.Equal(t, "b", e.session.currentPlayer().ID)
}

func TestJailSentenceAndRelease(t *testing.T) {
	e := newTestEngine(t, [2]int{1, 2}, [2]int{1, 1}, [2]int{2, 3})
	startTwoPlayerGame(t, e)

	alice := e.session.playerByID("a")
	alice.Position = 27 // Go To Jail is at index 30

	res := e.Execute(Command{Kind: CommandRoll, ActorID: "a"})
	require.True(t, res.Success)
	assert.Equal(t, e.session.Board.JailIndex(), alice.Position)
	assert.True(t, alice.InJail)
	assert.Equal(t, 1, alice.JailTurns)

	// Bob passes, Alice serves one turn in jail without moving.
	require.True(t, e.Execute(Command{Kind: CommandEnd, ActorID: "b"}).Success)
	res = e.Execute(Command{Kind: CommandRoll, ActorID: "a"})
	require.True(t, res.Success)
	assert.True(t, alice.InJail)
	assert.Equal(t, 0, alice.JailTurns)
	assert.Equal(t, e.session.Board.JailIndex(), alice.Position)

	// After the served turn, any roll releases and moves normally.
	require.True(t, e.Execute(Command{Kind: CommandEnd, ActorID: "b"}).Success)
	res = e.Execute(Command{Kind: CommandRoll, ActorID: "a"})
	require.True(t, res.Success)
	assert.False(t, alice.InJail)
	assert.Equal(t, 15, alice.Position) // 10 + 2 + 3
}

func TestBankruptcyEliminatesAndEndsGame(t *testing.T) {
	e := newTestEngine(t, [2]int{1, 2})
	startTwoPlayerGame(t, e)

	alice := e.session.playerByID("a")
	bob := e.session.playerByID("b")

	// Bob owns Boardwalk ($50 rent); Alice can't cover it and owns nothing.
	e.session.Ownership[39] = "b"
	alice.Cash = 30
	alice.Position = 36

	res := e.Execute(Command{Kind: CommandRoll, ActorID: "a"})
	require.True(t, res.Success)

	assert.Equal(t, models.PlayerStatusBankrupt, alice.Status)
	assert.Equal(t, -20, alice.Cash)
	assert.Equal(t, models.PhaseEnded, e.session.Phase)
	assert.Equal(t, "b", e.session.WinnerID)
	_ = bob

	// No further gameplay commands are accepted.
	res = e.Execute(Command{Kind: CommandRoll, ActorID: "b"})
	assert.False(t, res.Success)
	assert.Equal(t, ErrorAlreadyEnded, res.ErrorKind)
}

func TestEliminatedPropertiesRevertToUnowned(t *testing.T) {
	e := newTestEngine(t, [2]int{1, 2})
	join(t, e, "a", "Alice")
	join(t, e, "b", "Bob")
	join(t, e, "c", "Carol")
	require.True(t, e.Execute(Command{Kind: CommandStart, ActorID: "a"}).Success)

	alice := e.session.playerByID("a")
	e.session.Ownership[39] = "b" // Boardwalk, rent $50
	e.session.Ownership[1] = "a"
	e.session.Mortgaged[1] = true // mortgaged, so not liquidatable
	alice.Cash = 10
	alice.Position = 36

	res := e.Execute(Command{Kind: CommandRoll, ActorID: "a"})
	require.True(t, res.Success)

	assert.Equal(t, models.PlayerStatusBankrupt, alice.Status)
	_, owned := e.session.Ownership[1]
	assert.False(t, owned)

	// Two players remain, the game continues and the rotation skips Alice.
	assert.Equal(t, models.PhaseInProgress, e.session.Phase)
	assert.Equal(t, "b", e.session.currentPlayer().ID)
	require.True(t, e.Execute(Command{Kind: CommandEnd, ActorID: "b"}).Success)
	assert.Equal(t, "c", e.session.currentPlayer().ID)
	require.True(t, e.Execute(Command{Kind: CommandEnd, ActorID: "c"}).Success)
	assert.Equal(t, "b", e.session.currentPlayer().ID)
}

func TestNegativeCashWithLiquidatablePropertySurvives(t *testing.T) {
	e := newTestEngine(t, [2]int{1, 2})
	startTwoPlayerGame(t, e)

	alice := e.session.playerByID("a")
	e.session.Ownership[39] = "b"
	e.session.Ownership[1] = "a" // unmortgaged Mediterranean, liquidatable
	alice.Cash = 30
	alice.Position = 36

	res := e.Execute(Command{Kind: CommandRoll, ActorID: "a"})
	require.True(t, res.Success)

	assert.Equal(t, models.PlayerStatusActive, alice.Status)
	assert.Equal(t, -20, alice.Cash)
	assert.Equal(t, models.PhaseInProgress, e.session.Phase)
}

func TestCardMoveToCreditsGoOnWrap(t *testing.T) {
	e := newTestEngine(t)
	startTwoPlayerGame(t, e)

	alice := e.session.playerByID("a")
	alice.Position = 20
	cashBefore := alice.Cash

	card := models.Card{Text: "Advance to Go", Effect: models.CardEffect{Kind: models.EffectMoveTo, Square: "Go"}}
	e.applyCard(alice, card)

	assert.Equal(t, 0, alice.Position)
	assert.Equal(t, cashBefore+e.rules.GoReward, alice.Cash)
}

func TestCardCollectFromEachPlayer(t *testing.T) {
	e := newTestEngine(t)
	join(t, e, "a", "Alice")
	join(t, e, "b", "Bob")
	join(t, e, "c", "Carol")
	require.True(t, e.Execute(Command{Kind: CommandStart, ActorID: "a"}).Success)

	alice := e.session.playerByID("a")
	card := models.Card{Text: "Chairman", Effect: models.CardEffect{Kind: models.EffectCollectFromEach, Amount: 50}}
	e.applyCard(alice, card)

	assert.Equal(t, 1600, alice.Cash)
	assert.Equal(t, 1450, e.session.playerByID("b").Cash)
	assert.Equal(t, 1450, e.session.playerByID("c").Cash)
}

func TestRosterListsPlayersAndCash(t *testing.T) {
	e := newTestEngine(t)
	join(t, e, "a", "Alice")
	join(t, e, "b", "Bob")

	res := e.Execute(Command{Kind: CommandPlayers, ActorID: "a"})
	require.True(t, res.Success)
	require.Len(t, res.Messages, 3)
	assert.Contains(t, res.Messages[1], "Alice ($1500)")
}

func TestResetReturnsToFreshWaitingSession(t *testing.T) {
	e := newTestEngine(t)
	startTwoPlayerGame(t, e)
	oldID := e.session.ID

	view := e.Reset()
	assert.NotEqual(t, oldID, view.ID)
	assert.Equal(t, string(models.PhaseWaiting), view.Phase)
	assert.Empty(t, view.Players)
}

func TestSnapshotReflectsState(t *testing.T) {
	e := newTestEngine(t, [2]int{1, 2})
	startTwoPlayerGame(t, e)
	require.True(t, e.Execute(Command{Kind: CommandRoll, ActorID: "a"}).Success)

	view := e.Snapshot()
	assert.Equal(t, string(models.PhaseInProgress), view.Phase)
	assert.Equal(t, "a", view.CurrentTurn)
	assert.Equal(t, "Baltic Avenue", view.PendingOffer)
	require.Len(t, view.Players, 2)
}

type captureSink struct {
	events []Event
}

func (c *captureSink) HandleEvent(event Event) {
	c.events = append(c.events, event)
}

func TestSinksReceiveEventsAndFinalSnapshot(t *testing.T) {
	e := newTestEngine(t, [2]int{1, 2})
	sink := &captureSink{}
	e.AddSink(sink)
	startTwoPlayerGame(t, e)

	alice := e.session.playerByID("a")
	e.session.Ownership[39] = "b"
	alice.Cash = 30
	alice.Position = 36
	require.True(t, e.Execute(Command{Kind: CommandRoll, ActorID: "a"}).Success)

	require.NotEmpty(t, sink.events)
	last := sink.events[len(sink.events)-1]
	assert.Equal(t, string(models.PhaseEnded), last.Phase)
	assert.Equal(t, "b", last.WinnerID)
	require.NotNil(t, last.Final)
	assert.Equal(t, "b", last.Final.WinnerID)
}
