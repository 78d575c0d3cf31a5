package deck

import (
	"math/rand"

	"github.com/monopolybot/backend/internal/game/models"
)

// Chance returns the chance deck used by a standard session.
func Chance(rng *rand.Rand) (*Deck, error) {
	return New("chance", chanceCards(), rng)
}

// CommunityChest returns the community chest deck used by a standard session.
func CommunityChest(rng *rand.Rand) (*Deck, error) {
	return New("community chest", communityChestCards(), rng)
}

func chanceCards() []models.Card {
	return []models.Card{
		{Text: "Advance to Go", Effect: models.CardEffect{Kind: models.EffectMoveTo, Square: "Go"}},
		{Text: "Advance to Illinois Avenue", Effect: models.CardEffect{Kind: models.EffectMoveTo, Square: "Illinois Avenue"}},
		{Text: "Advance to Boardwalk", Effect: models.CardEffect{Kind: models.EffectMoveTo, Square: "Boardwalk"}},
		{Text: "Take a trip to Reading Railroad", Effect: models.CardEffect{Kind: models.EffectMoveTo, Square: "Reading Railroad"}},
		{Text: "Bank pays you dividend of $50", Effect: models.CardEffect{Kind: models.EffectCollect, Amount: 50}},
		{Text: "Your building loan matures, collect $150", Effect: models.CardEffect{Kind: models.EffectCollect, Amount: 150}},
		{Text: "Speeding fine, pay $15", Effect: models.CardEffect{Kind: models.EffectPay, Amount: 15}},
		{Text: "Pay poor tax of $15", Effect: models.CardEffect{Kind: models.EffectPay, Amount: 15}},
		{Text: "Go directly to Jail", Effect: models.CardEffect{Kind: models.EffectGoToJail}},
		{Text: "You have been elected chairman of the board, collect $50 from every player", Effect: models.CardEffect{Kind: models.EffectCollectFromEach, Amount: 50}},
	}
}

func communityChestCards() []models.Card {
	return []models.Card{
		{Text: "Advance to Go", Effect: models.CardEffect{Kind: models.EffectMoveTo, Square: "Go"}},
		{Text: "Bank error in your favor, collect $200", Effect: models.CardEffect{Kind: models.EffectCollect, Amount: 200}},
		{Text: "From sale of stock you get $50", Effect: models.CardEffect{Kind: models.EffectCollect, Amount: 50}},
		{Text: "Income tax refund, collect $20", Effect: models.CardEffect{Kind: models.EffectCollect, Amount: 20}},
		{Text: "Life insurance matures, collect $100", Effect: models.CardEffect{Kind: models.EffectCollect, Amount: 100}},
		{Text: "Doctor's fee, pay $50", Effect: models.CardEffect{Kind: models.EffectPay, Amount: 50}},
		{Text: "Pay hospital fees of $100", Effect: models.CardEffect{Kind: models.EffectPay, Amount: 100}},
		{Text: "Pay school fees of $50", Effect: models.CardEffect{Kind: models.EffectPay, Amount: 50}},
		{Text: "Go directly to Jail", Effect: models.CardEffect{Kind: models.EffectGoToJail}},
		{Text: "It is your birthday, collect $10 from every player", Effect: models.CardEffect{Kind: models.EffectCollectFromEach, Amount: 10}},
	}
}
