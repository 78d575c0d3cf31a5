package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/monopolybot/backend/internal/game/board"
	"github.com/monopolybot/backend/internal/game/deck"
	"github.com/monopolybot/backend/internal/game/models"
)

// Rules are the tunable constants of a session.
type Rules struct {
	StartingCash int
	GoReward     int
	MinPlayers   int
	MaxPlayers   int
	JailTurns    int
}

// DefaultRules returns the classic ruleset.
func DefaultRules() Rules {
	return Rules{
		StartingCash: 1500,
		GoReward:     200,
		MinPlayers:   2,
		MaxPlayers:   6,
		JailTurns:    1,
	}
}

// PendingOffer is the sub-state between landing on an unowned,
// affordable property and the same player's buy or end command.
type PendingOffer struct {
	PlayerID    string `json:"playerId"`
	SquareIndex int    `json:"squareIndex"`
}

// PendingTrade is an outstanding trade proposal awaiting the
// counterpart's explicit acceptance. Offer and Demand hold square
// indexes; ownership does not change until acceptance.
type PendingTrade struct {
	ID     string `json:"tradeId"`
	FromID string `json:"fromId"`
	ToID   string `json:"toId"`
	Offer  []int  `json:"offer"`
	Demand []int  `json:"demand"`
}

// Session aggregates all mutable state of one game, from the first join
// through a single winner. Exactly one session exists per process;
// everything here is owned by the engine and mutated only under its lock.
type Session struct {
	ID             string
	Phase          models.SessionPhase
	Board          *board.Board
	Chance         *deck.Deck
	CommunityChest *deck.Deck
	Players        []*models.Player
	// Ownership maps square index to owning player ID. The map holds an
	// identifier, not a player reference, so eliminating a player cannot
	// leave dangling pointers.
	Ownership map[int]string
	Mortgaged map[int]bool
	Turn      int
	Pending   *PendingOffer
	Trade     *PendingTrade
	WinnerID  string
	TurnCount int
	CreatedAt time.Time
}

func newSession(b *board.Board, chance, chest *deck.Deck) *Session {
	return &Session{
		ID:             uuid.New().String(),
		Phase:          models.PhaseWaiting,
		Board:          b,
		Chance:         chance,
		CommunityChest: chest,
		Players:        []*models.Player{},
		Ownership:      make(map[int]string),
		Mortgaged:      make(map[int]bool),
		CreatedAt:      time.Now(),
	}
}

func (s *Session) playerByID(id string) *models.Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Session) currentPlayer() *models.Player {
	if len(s.Players) == 0 {
		return nil
	}
	return s.Players[s.Turn]
}

func (s *Session) activeCount() int {
	n := 0
	for _, p := range s.Players {
		if p.Active() {
			n++
		}
	}
	return n
}

// advance moves the turn to the next non-eliminated player, wrapping
// around the roster, and clears any unresolved buy offer.
func (s *Session) advance() *models.Player {
	s.Pending = nil
	for i := 0; i < len(s.Players); i++ {
		s.Turn = (s.Turn + 1) % len(s.Players)
		if s.Players[s.Turn].Active() {
			s.TurnCount++
			return s.Players[s.Turn]
		}
	}
	return nil
}

// nextActiveAfter returns the next active player after the given one in
// turn order, or nil if none exists.
func (s *Session) nextActiveAfter(id string) *models.Player {
	start := -1
	for i, p := range s.Players {
		if p.ID == id {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}
	for i := 1; i <= len(s.Players); i++ {
		candidate := s.Players[(start+i)%len(s.Players)]
		if candidate.ID != id && candidate.Active() {
			return candidate
		}
	}
	return nil
}

// ownedBy returns the square indexes owned by the given player, sorted.
func (s *Session) ownedBy(id string) []int {
	var owned []int
	for index, owner := range s.Ownership {
		if owner == id {
			owned = append(owned, index)
		}
	}
	sort.Ints(owned)
	return owned
}

// hasLiquidatable reports whether the player owns at least one
// unmortgaged property that could be sold to cover a debt.
func (s *Session) hasLiquidatable(id string) bool {
	for index, owner := range s.Ownership {
		if owner == id && !s.Mortgaged[index] {
			return true
		}
	}
	return false
}

// SessionView is a read-only snapshot of the session for the HTTP API
// and spectators.
type SessionView struct {
	ID           string       `json:"sessionId"`
	Phase        string       `json:"phase"`
	Players      []PlayerView `json:"players"`
	CurrentTurn  string       `json:"currentTurn,omitempty"`
	PendingOffer string       `json:"pendingOffer,omitempty"`
	PendingTrade string       `json:"pendingTrade,omitempty"`
	WinnerID     string       `json:"winnerId,omitempty"`
	TurnCount    int          `json:"turnCount"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// PlayerView is one player's public state.
type PlayerView struct {
	ID         string   `json:"playerId"`
	Name       string   `json:"displayName"`
	Cash       int      `json:"cash"`
	Position   int      `json:"position"`
	Square     string   `json:"square"`
	Status     string   `json:"status"`
	InJail     bool     `json:"inJail"`
	Properties []string `json:"properties"`
}

func (s *Session) view() SessionView {
	view := SessionView{
		ID:        s.ID,
		Phase:     string(s.Phase),
		Players:   make([]PlayerView, 0, len(s.Players)),
		WinnerID:  s.WinnerID,
		TurnCount: s.TurnCount,
		CreatedAt: s.CreatedAt,
	}

	for _, p := range s.Players {
		names := make([]string, 0)
		for _, index := range s.ownedBy(p.ID) {
			names = append(names, s.Board.SquareAt(index).Name)
		}
		view.Players = append(view.Players, PlayerView{
			ID:         p.ID,
			Name:       p.DisplayName,
			Cash:       p.Cash,
			Position:   p.Position,
			Square:     s.Board.SquareAt(p.Position).Name,
			Status:     string(p.Status),
			InJail:     p.InJail,
			Properties: names,
		})
	}

	if s.Phase == models.PhaseInProgress {
		if current := s.currentPlayer(); current != nil {
			view.CurrentTurn = current.ID
		}
	}
	if s.Pending != nil {
		view.PendingOffer = s.Board.SquareAt(s.Pending.SquareIndex).Name
	}
	if s.Trade != nil {
		view.PendingTrade = s.Trade.ID
	}

	return view
}
