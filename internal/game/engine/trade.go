package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/monopolybot/backend/internal/game/models"
)

const tradeUsage = "Please specify the trade in the format: /trade offer: property1, property2; demand: property3, property4."

// parseTradeArgs splits the raw trade clause into offer and demand
// property names. The wire format is fixed for compatibility:
// "offer: <name>[, <name>...]; demand: <name>[, <name>...]".
func parseTradeArgs(raw string) (offer, demand []string, ok bool) {
	parts := strings.Split(raw, ";")
	if len(parts) != 2 {
		return nil, nil, false
	}

	offerPart := strings.TrimSpace(parts[0])
	demandPart := strings.TrimSpace(parts[1])
	if !strings.HasPrefix(strings.ToLower(offerPart), "offer:") ||
		!strings.HasPrefix(strings.ToLower(demandPart), "demand:") {
		return nil, nil, false
	}

	offer = splitNames(offerPart[len("offer:"):])
	demand = splitNames(demandPart[len("demand:"):])
	if len(offer) == 0 || len(demand) == 0 {
		return nil, nil, false
	}
	return offer, demand, true
}

func splitNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (e *Engine) tradeOffer(cmd Command) Result {
	if r := e.requireTurn(cmd.ActorID); r != nil {
		return *r
	}

	s := e.session
	player := s.currentPlayer()

	offerNames, demandNames, parsed := parseTradeArgs(cmd.RawArgs)
	if !parsed {
		return reject(ErrorBadArguments, tradeUsage)
	}

	offer, result := e.resolveSquares(offerNames)
	if result != nil {
		return *result
	}
	demand, result := e.resolveSquares(demandNames)
	if result != nil {
		return *result
	}

	counterpart := s.nextActiveAfter(player.ID)
	if counterpart == nil {
		return reject(ErrorInvalidTradeShape, "There is nobody to trade with.")
	}

	if r := e.validateTrade(player.ID, counterpart.ID, offer, demand); r != nil {
		return *r
	}

	s.Trade = &PendingTrade{
		ID:     uuid.New().String(),
		FromID: player.ID,
		ToID:   counterpart.ID,
		Offer:  squareIndexes(offer),
		Demand: squareIndexes(demand),
	}

	return ok(fmt.Sprintf("%s wants to trade %s for %s with %s. %s, type /accept to accept the trade.",
		player.DisplayName, formatSquares(offer), formatSquares(demand),
		counterpart.DisplayName, counterpart.DisplayName))
}

func (e *Engine) tradeAccept(cmd Command) Result {
	s := e.session
	switch s.Phase {
	case models.PhaseWaiting:
		return reject(ErrorNotStarted, "The game is not started yet. Type /start when everyone has joined.")
	case models.PhaseEnded:
		return reject(ErrorAlreadyEnded, "The game is already ended.")
	}

	if s.Trade == nil {
		return reject(ErrorNoPendingTrade, "There is no trade to accept.")
	}
	if cmd.ActorID != s.Trade.ToID {
		counterpart := s.playerByID(s.Trade.ToID)
		return reject(ErrorOutOfTurn, fmt.Sprintf("Only %s can accept this trade.", counterpart.DisplayName))
	}

	trade := s.Trade
	offer := e.squaresAt(trade.Offer)
	demand := e.squaresAt(trade.Demand)

	// Ownership may have shifted since the proposal; a stale trade is
	// dropped rather than partially applied.
	if r := e.validateTrade(trade.FromID, trade.ToID, offer, demand); r != nil {
		s.Trade = nil
		return reject(ErrorInvalidTradeShape, "The trade is no longer valid and has been cancelled.")
	}

	for _, sq := range offer {
		s.Ownership[sq.Index] = trade.ToID
	}
	for _, sq := range demand {
		s.Ownership[sq.Index] = trade.FromID
	}
	s.Trade = nil

	from := s.playerByID(trade.FromID)
	to := s.playerByID(trade.ToID)

	e.logger.Infow("Trade executed", "sessionId", s.ID, "tradeId", trade.ID,
		"from", trade.FromID, "to", trade.ToID)

	return ok(fmt.Sprintf("%s accepted the trade: %s now owns %s and %s now owns %s.",
		to.DisplayName, to.DisplayName, formatSquares(offer), from.DisplayName, formatSquares(demand)))
}

// validateTrade enforces the trade invariant: every offered property is
// owned by the offering side, every demanded property by the
// counterpart, nothing is mortgaged, and the aggregate prices match.
func (e *Engine) validateTrade(fromID, toID string, offer, demand []models.Square) *Result {
	s := e.session

	offerValue := 0
	for _, sq := range offer {
		if s.Ownership[sq.Index] != fromID {
			r := reject(ErrorInvalidTradeShape, fmt.Sprintf("You don't own %s.", sq.Name))
			return &r
		}
		if s.Mortgaged[sq.Index] {
			r := reject(ErrorInvalidTradeShape, fmt.Sprintf("%s is mortgaged and can't be traded.", sq.Name))
			return &r
		}
		offerValue += sq.Price
	}

	demandValue := 0
	for _, sq := range demand {
		if s.Ownership[sq.Index] != toID {
			r := reject(ErrorInvalidTradeShape, fmt.Sprintf("%s does not belong to the other player.", sq.Name))
			return &r
		}
		if s.Mortgaged[sq.Index] {
			r := reject(ErrorInvalidTradeShape, fmt.Sprintf("%s is mortgaged and can't be traded.", sq.Name))
			return &r
		}
		demandValue += sq.Price
	}

	if offerValue != demandValue {
		r := reject(ErrorInvalidTradeShape,
			fmt.Sprintf("The trade is not balanced: $%d offered against $%d demanded.", offerValue, demandValue))
		return &r
	}
	return nil
}

func (e *Engine) resolveSquares(names []string) ([]models.Square, *Result) {
	squares := make([]models.Square, 0, len(names))
	for _, name := range names {
		square, found := e.session.Board.FindByName(name)
		if !found {
			r := reject(ErrorUnknownProperty, fmt.Sprintf("There is no property named %s.", name))
			return nil, &r
		}
		if !square.Purchasable() {
			r := reject(ErrorUnknownProperty, fmt.Sprintf("%s can't be traded.", square.Name))
			return nil, &r
		}
		squares = append(squares, square)
	}
	return squares, nil
}

func (e *Engine) squaresAt(indexes []int) []models.Square {
	squares := make([]models.Square, 0, len(indexes))
	for _, index := range indexes {
		squares = append(squares, e.session.Board.SquareAt(index))
	}
	return squares
}

func squareIndexes(squares []models.Square) []int {
	indexes := make([]int, 0, len(squares))
	for _, sq := range squares {
		indexes = append(indexes, sq.Index)
	}
	return indexes
}

func formatSquares(squares []models.Square) string {
	parts := make([]string, 0, len(squares))
	for _, sq := range squares {
		parts = append(parts, fmt.Sprintf("%s ($%d)", sq.Name, sq.Price))
	}
	return strings.Join(parts, ", ")
}
