package engine

import "math/rand"

// Dice produces one roll of two six-sided dice. The engine takes it as
// an interface so tests can script exact rolls.
type Dice interface {
	Roll() (int, int)
}

type randomDice struct {
	rng *rand.Rand
}

// NewDice returns dice backed by the given random source.
func NewDice(rng *rand.Rand) Dice {
	return &randomDice{rng: rng}
}

func (d *randomDice) Roll() (int, int) {
	return d.rng.Intn(6) + 1, d.rng.Intn(6) + 1
}
