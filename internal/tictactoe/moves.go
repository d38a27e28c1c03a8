package tictactoe

import (
	"iter"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/entity"
)

// LegalMoves yields every playable (board, square) in ascending order.
// The sequence can be ranged over more than once.
func LegalMoves(state entity.GameState) iter.Seq[entity.Move] {
	return func(yield func(entity.Move) bool) {
		for _, board := range state.Boards {
			if board.IsDecided() {
				continue
			}

			for square, cell := range board.Cells {
				if cell != entity.Empty {
					continue
				}

				if !yield(entity.Move{Board: board.ID, Square: square}) {
					return
				}
			}
		}
	}
}

func CountLegalMoves(state entity.GameState) int {
	count := 0
	for range LegalMoves(state) {
		count++
	}

	return count
}
