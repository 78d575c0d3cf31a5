package board

import (
	"fmt"
	"strings"

	"github.com/monopolybot/backend/internal/game/models"
)

// Board is the static sequence of squares a session is played on.
// It is read-only after construction.
type Board struct {
	squares []models.Square
	byName  map[string]int
	jail    int
}

// New builds a board from the given squares and validates it. An empty
// board, a duplicate square name, an index mismatch, or a board without
// a GO or JAIL square is a configuration error and fails fast.
func New(squares []models.Square) (*Board, error) {
	if len(squares) == 0 {
		return nil, fmt.Errorf("board configuration error: no squares defined")
	}

	b := &Board{
		squares: squares,
		byName:  make(map[string]int, len(squares)),
		jail:    -1,
	}

	hasGo := false
	for i, sq := range squares {
		if sq.Index != i {
			return nil, fmt.Errorf("board configuration error: square %q has index %d, expected %d", sq.Name, sq.Index, i)
		}

		key := normalizeName(sq.Name)
		if _, dup := b.byName[key]; dup {
			return nil, fmt.Errorf("board configuration error: duplicate square name %q", sq.Name)
		}
		b.byName[key] = i

		switch sq.Kind {
		case models.SquareGo:
			hasGo = true
		case models.SquareJail:
			b.jail = i
		}

		if sq.Purchasable() && sq.Price <= 0 {
			return nil, fmt.Errorf("board configuration error: square %q has no price", sq.Name)
		}
	}

	if !hasGo {
		return nil, fmt.Errorf("board configuration error: no GO square")
	}
	if b.jail < 0 {
		return nil, fmt.Errorf("board configuration error: no JAIL square")
	}

	return b, nil
}

// Size returns the number of squares on the board.
func (b *Board) Size() int {
	return len(b.squares)
}

// SquareAt returns the square at the given position index.
func (b *Board) SquareAt(index int) models.Square {
	return b.squares[index]
}

// FindByName looks up a square by its display name, case-insensitively.
func (b *Board) FindByName(name string) (models.Square, bool) {
	index, ok := b.byName[normalizeName(name)]
	if !ok {
		return models.Square{}, false
	}
	return b.squares[index], true
}

// JailIndex returns the position of the JAIL square.
func (b *Board) JailIndex() int {
	return b.jail
}

// Squares returns a copy of the full square list.
func (b *Board) Squares() []models.Square {
	out := make([]models.Square, len(b.squares))
	copy(out, b.squares)
	return out
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
