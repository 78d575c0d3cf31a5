package engine

import (
	"fmt"

	"github.com/monopolybot/backend/internal/game/models"
)

func (e *Engine) roll(cmd Command) Result {
	if r := e.requireTurn(cmd.ActorID); r != nil {
		return *r
	}

	s := e.session
	if s.Pending != nil {
		square := s.Board.SquareAt(s.Pending.SquareIndex)
		return reject(ErrorOfferPending,
			fmt.Sprintf("Resolve the offer for %s first: type /buy to buy or /end to pass.", square.Name))
	}

	player := s.currentPlayer()
	d1, d2 := e.dice.Roll()
	messages := []string{fmt.Sprintf("%s rolled %d and %d.", player.DisplayName, d1, d2)}

	if player.InJail {
		if player.JailTurns > 0 {
			player.JailTurns--
			messages = append(messages, fmt.Sprintf("%s is serving time in jail.", player.DisplayName))
			next := s.advance()
			messages = append(messages, fmt.Sprintf("It's %s's turn. Type /roll to roll the dice.", next.DisplayName))
			return ok(messages...)
		}
		player.InJail = false
		messages = append(messages, fmt.Sprintf("%s is released from jail.", player.DisplayName))
	}

	messages = append(messages, e.movePlayer(player, d1+d2)...)
	messages = append(messages, e.landOn(player)...)

	if s.Phase == models.PhaseEnded {
		return ok(messages...)
	}

	// A pending buy offer suspends the automatic turn end until the same
	// player resolves it with /buy or /end.
	if s.Pending != nil {
		return ok(messages...)
	}

	next := s.advance()
	messages = append(messages, fmt.Sprintf("It's %s's turn. Type /roll to roll the dice.", next.DisplayName))
	return ok(messages...)
}

// movePlayer advances the player by steps, wrapping around the board.
// Passing the GO square credits the reward exactly once per wrap,
// regardless of where the player lands.
func (e *Engine) movePlayer(player *models.Player, steps int) []string {
	s := e.session
	from := s.Board.SquareAt(player.Position)
	wrapped := player.Position+steps >= s.Board.Size()
	player.Position = (player.Position + steps) % s.Board.Size()
	to := s.Board.SquareAt(player.Position)

	messages := []string{fmt.Sprintf("%s moved from %s to %s.", player.DisplayName, from.Name, to.Name)}
	if wrapped {
		player.Cash += e.rules.GoReward
		messages = append(messages, fmt.Sprintf("%s passed GO and collected $%d.", player.DisplayName, e.rules.GoReward))
	}
	return messages
}

// landOn applies the effect of the square the player now occupies.
func (e *Engine) landOn(player *models.Player) []string {
	s := e.session
	square := s.Board.SquareAt(player.Position)

	switch square.Kind {
	case models.SquareGo:
		// The wrap credit in movePlayer already covered landing here.
		return []string{fmt.Sprintf("%s is on GO.", player.DisplayName)}

	case models.SquareJail:
		return []string{fmt.Sprintf("%s is just visiting jail.", player.DisplayName)}

	case models.SquareGoToJail:
		return e.sendToJail(player)

	case models.SquareFreeParking:
		return []string{fmt.Sprintf("%s is on FREE PARKING.", player.DisplayName)}

	case models.SquareTax:
		messages := []string{fmt.Sprintf("%s paid $%d in taxes.", player.DisplayName, square.Tax)}
		return append(messages, e.debit(player, square.Tax, nil)...)

	case models.SquareChance:
		card := s.Chance.Draw()
		messages := []string{fmt.Sprintf("%s drew a chance card: %s.", player.DisplayName, card.Text)}
		return append(messages, e.applyCard(player, card)...)

	case models.SquareCommunityChest:
		card := s.CommunityChest.Draw()
		messages := []string{fmt.Sprintf("%s drew a community chest card: %s.", player.DisplayName, card.Text)}
		return append(messages, e.applyCard(player, card)...)

	case models.SquareProperty, models.SquareRailroad, models.SquareUtility:
		return e.landOnPurchasable(player, square.Index)
	}

	return nil
}

func (e *Engine) landOnPurchasable(player *models.Player, index int) []string {
	s := e.session
	square := s.Board.SquareAt(index)

	ownerID, owned := s.Ownership[index]
	if !owned {
		if player.Cash < square.Price {
			return []string{fmt.Sprintf("%s can't afford %s ($%d).", player.DisplayName, square.Name, square.Price)}
		}
		s.Pending = &PendingOffer{PlayerID: player.ID, SquareIndex: index}
		return []string{fmt.Sprintf("%s, do you want to buy %s ($%d)? Type /buy to buy or /end to end your turn.",
			player.DisplayName, square.Name, square.Price)}
	}

	if ownerID == player.ID {
		return []string{fmt.Sprintf("%s already owns %s.", player.DisplayName, square.Name)}
	}

	owner := s.playerByID(ownerID)
	messages := []string{fmt.Sprintf("%s paid $%d rent to %s for %s.",
		player.DisplayName, square.Rent, owner.DisplayName, square.Name)}
	return append(messages, e.debit(player, square.Rent, owner)...)
}

func (e *Engine) sendToJail(player *models.Player) []string {
	s := e.session
	player.Position = s.Board.JailIndex()
	player.InJail = true
	player.JailTurns = e.rules.JailTurns
	return []string{fmt.Sprintf("%s was sent to JAIL.", player.DisplayName)}
}

// applyCard applies a card effect to the drawing player and reports the
// mutation. A destination move credits the GO reward when it wraps, but
// the destination square's own effect is not resolved recursively.
func (e *Engine) applyCard(player *models.Player, card models.Card) []string {
	s := e.session

	switch card.Effect.Kind {
	case models.EffectMoveTo:
		target, found := s.Board.FindByName(card.Effect.Square)
		if !found {
			e.logger.Errorw("Card names unknown square", "square", card.Effect.Square)
			return nil
		}
		steps := target.Index - player.Position
		if steps <= 0 {
			steps += s.Board.Size()
		}
		return e.movePlayer(player, steps)

	case models.EffectCollect:
		player.Cash += card.Effect.Amount
		return []string{fmt.Sprintf("%s collected $%d.", player.DisplayName, card.Effect.Amount)}

	case models.EffectPay:
		messages := []string{fmt.Sprintf("%s paid $%d.", player.DisplayName, card.Effect.Amount)}
		return append(messages, e.debit(player, card.Effect.Amount, nil)...)

	case models.EffectGoToJail:
		return e.sendToJail(player)

	case models.EffectCollectFromEach:
		var messages []string
		for _, other := range s.Players {
			if other.ID == player.ID || !other.Active() {
				continue
			}
			messages = append(messages, e.debit(other, card.Effect.Amount, player)...)
		}
		messages = append(messages, fmt.Sprintf("%s collected $%d from every player.",
			player.DisplayName, card.Effect.Amount))
		return messages
	}

	return nil
}

// debit transfers cash from payer to creditor (or to the bank when
// creditor is nil) and runs the bankruptcy check.
func (e *Engine) debit(payer *models.Player, amount int, creditor *models.Player) []string {
	payer.Cash -= amount
	if creditor != nil {
		creditor.Cash += amount
	}
	return e.checkBankruptcy(payer)
}

// checkBankruptcy eliminates the player if their cash went negative and
// they hold nothing they could liquidate. Their properties revert to
// unowned and the rotation skips them from now on.
func (e *Engine) checkBankruptcy(player *models.Player) []string {
	s := e.session
	if player.Cash >= 0 || s.hasLiquidatable(player.ID) {
		return nil
	}

	player.Status = models.PlayerStatusBankrupt
	for _, index := range s.ownedBy(player.ID) {
		delete(s.Ownership, index)
		delete(s.Mortgaged, index)
	}
	if s.Trade != nil && (s.Trade.FromID == player.ID || s.Trade.ToID == player.ID) {
		s.Trade = nil
	}

	e.logger.Infow("Player eliminated", "sessionId", s.ID, "playerId", player.ID)

	messages := []string{fmt.Sprintf("%s is bankrupt and out of the game.", player.DisplayName)}
	return append(messages, e.checkEndGame()...)
}

// checkEndGame ends the session when exactly one active player remains.
func (e *Engine) checkEndGame() []string {
	s := e.session
	if s.activeCount() != 1 {
		return nil
	}

	var winner *models.Player
	for _, p := range s.Players {
		if p.Active() {
			winner = p
			break
		}
	}

	s.Phase = models.PhaseEnded
	s.WinnerID = winner.ID
	s.Pending = nil
	s.Trade = nil

	e.logger.Infow("Game ended", "sessionId", s.ID, "winnerId", winner.ID, "turns", s.TurnCount)

	return []string{fmt.Sprintf("%s is the winner of the game! Congratulations!", winner.DisplayName)}
}
