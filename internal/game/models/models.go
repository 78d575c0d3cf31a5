package models

// SquareKind classifies a board square and determines what happens
// when a player lands on it.
type SquareKind string

const (
	SquareGo             SquareKind = "GO"
	SquareJail           SquareKind = "JAIL"
	SquareGoToJail       SquareKind = "GO_TO_JAIL"
	SquareTax            SquareKind = "TAX"
	SquareFreeParking    SquareKind = "FREE_PARKING"
	SquareChance         SquareKind = "CHANCE"
	SquareCommunityChest SquareKind = "COMMUNITY_CHEST"
	SquareProperty       SquareKind = "PROPERTY"
	SquareRailroad       SquareKind = "RAILROAD"
	SquareUtility        SquareKind = "UTILITY"
)

// Square is one position on the board. Squares are immutable after the
// board is constructed; ownership and mortgage state live on the session.
type Square struct {
	Index int        `json:"index"`
	Kind  SquareKind `json:"kind"`
	Name  string     `json:"name"`
	Price int        `json:"price,omitempty"`
	Rent  int        `json:"rent,omitempty"`
	Tax   int        `json:"tax,omitempty"`
}

// Purchasable reports whether the square can be owned by a player.
func (s Square) Purchasable() bool {
	switch s.Kind {
	case SquareProperty, SquareRailroad, SquareUtility:
		return true
	}
	return false
}

// PlayerStatus represents the status of a player in the rotation
type PlayerStatus string

const (
	PlayerStatusActive   PlayerStatus = "ACTIVE"
	PlayerStatusBankrupt PlayerStatus = "BANKRUPT"
)

// Player is one participant in a session. Players are created on join and
// never removed from the roster; a bankrupt player is marked and skipped
// by the turn rotation.
type Player struct {
	ID          string       `json:"playerId"`
	DisplayName string       `json:"displayName"`
	Cash        int          `json:"cash"`
	Position    int          `json:"position"`
	Status      PlayerStatus `json:"status"`
	InJail      bool         `json:"inJail"`
	JailTurns   int          `json:"jailTurns"`
}

// Active reports whether the player is still in the turn rotation.
func (p *Player) Active() bool {
	return p.Status == PlayerStatusActive
}

// SessionPhase represents the lifecycle phase of a game session
type SessionPhase string

const (
	PhaseWaiting    SessionPhase = "WAITING"
	PhaseInProgress SessionPhase = "IN_PROGRESS"
	PhaseEnded      SessionPhase = "ENDED"
)

// CardEffectKind enumerates the closed set of card effects. Effects are
// data, not callables, so decks can be inspected and tested directly.
type CardEffectKind string

const (
	EffectMoveTo          CardEffectKind = "MOVE_TO"
	EffectCollect         CardEffectKind = "COLLECT"
	EffectPay             CardEffectKind = "PAY"
	EffectGoToJail        CardEffectKind = "GO_TO_JAIL"
	EffectCollectFromEach CardEffectKind = "COLLECT_FROM_EACH"
)

// CardEffect is the parameterized action a drawn card applies to the
// drawing player. Amount is used by the monetary effects, Square names
// the destination for MOVE_TO.
type CardEffect struct {
	Kind   CardEffectKind `json:"kind"`
	Amount int            `json:"amount,omitempty"`
	Square string         `json:"square,omitempty"`
}

// Card is a chance or community chest card, defined at startup.
type Card struct {
	Text   string     `json:"text"`
	Effect CardEffect `json:"effect"`
}
