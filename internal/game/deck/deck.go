package deck

import (
	"fmt"
	"math/rand"

	"github.com/monopolybot/backend/internal/game/models"
)

// Deck is a fixed set of cards drawn uniformly at random with
// replacement. Because draws are with replacement there is no discard
// pile and no reshuffling.
type Deck struct {
	name  string
	cards []models.Card
	rng   *rand.Rand
}

// New builds a deck from the given cards. A deck with zero cards is a
// configuration error and fails fast at startup.
func New(name string, cards []models.Card, rng *rand.Rand) (*Deck, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("deck configuration error: %s deck is empty", name)
	}
	return &Deck{
		name:  name,
		cards: cards,
		rng:   rng,
	}, nil
}

// Name returns the deck's display name.
func (d *Deck) Name() string {
	return d.name
}

// Size returns the number of distinct cards in the deck.
func (d *Deck) Size() int {
	return len(d.cards)
}

// Draw selects a card uniformly at random. The deck is never consumed.
func (d *Deck) Draw() models.Card {
	return d.cards[d.rng.Intn(len(d.cards))]
}
