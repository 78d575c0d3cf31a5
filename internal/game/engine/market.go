package engine

import "fmt"

func (e *Engine) buy(cmd Command) Result {
	if r := e.requireTurn(cmd.ActorID); r != nil {
		return *r
	}

	s := e.session
	player := s.currentPlayer()
	if s.Pending == nil || s.Pending.PlayerID != player.ID || s.Pending.SquareIndex != player.Position {
		return reject(ErrorNoPendingOffer, "There is nothing to buy right now. Roll first.")
	}

	square := s.Board.SquareAt(s.Pending.SquareIndex)
	if _, owned := s.Ownership[square.Index]; owned {
		return reject(ErrorAlreadyOwned, fmt.Sprintf("%s is already owned.", square.Name))
	}
	if player.Cash < square.Price {
		return reject(ErrorInsufficientFunds,
			fmt.Sprintf("You don't have enough money to buy %s ($%d).", square.Name, square.Price))
	}

	player.Cash -= square.Price
	s.Ownership[square.Index] = player.ID
	s.Pending = nil

	messages := []string{fmt.Sprintf("%s bought %s ($%d).", player.DisplayName, square.Name, square.Price)}
	next := s.advance()
	messages = append(messages, fmt.Sprintf("It's %s's turn. Type /roll to roll the dice.", next.DisplayName))
	return ok(messages...)
}

func (e *Engine) sell(cmd Command) Result {
	if r := e.requireTurn(cmd.ActorID); r != nil {
		return *r
	}

	s := e.session
	player := s.currentPlayer()
	if s.Pending != nil {
		pending := s.Board.SquareAt(s.Pending.SquareIndex)
		return reject(ErrorOfferPending,
			fmt.Sprintf("Resolve the offer for %s first: type /buy to buy or /end to pass.", pending.Name))
	}

	name := cmd.RawArgs
	if name == "" {
		return reject(ErrorBadArguments, "Please specify the property name you want to sell.")
	}

	square, found := s.Board.FindByName(name)
	if !found {
		return reject(ErrorUnknownProperty, fmt.Sprintf("There is no property named %s.", name))
	}
	if s.Ownership[square.Index] != player.ID {
		return reject(ErrorNotOwned, fmt.Sprintf("You don't own %s.", square.Name))
	}
	if s.Mortgaged[square.Index] {
		return reject(ErrorMortgaged, fmt.Sprintf("You can't sell %s because it is mortgaged.", square.Name))
	}

	player.Cash += square.Price
	delete(s.Ownership, square.Index)

	messages := []string{fmt.Sprintf("%s sold %s ($%d).", player.DisplayName, square.Name, square.Price)}
	next := s.advance()
	messages = append(messages, fmt.Sprintf("It's %s's turn. Type /roll to roll the dice.", next.DisplayName))
	return ok(messages...)
}
