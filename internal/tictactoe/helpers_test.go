package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/entity"
	"github.com/stretchr/testify/require"
)

// cells parses a board drawn as nine runes: X, O or '.' for an empty cell.
func cells(t *testing.T, layout string) [entity.BoardSize]entity.Piece {
	t.Helper()

	require.Len(t, layout, entity.BoardSize)

	var marks [entity.BoardSize]entity.Piece
	for i, r := range layout {
		switch r {
		case 'X':
			marks[i] = entity.PieceX
		case 'O':
			marks[i] = entity.PieceO
		case '.':
			marks[i] = entity.Empty
		default:
			t.Fatalf("unexpected mark %q in layout %q", r, layout)
		}
	}

	return marks
}

// stateWith builds a consistent state from per-board layouts.
func stateWith(t *testing.T, next entity.Piece, layouts map[int]string) entity.GameState {
	t.Helper()

	state := entity.NewGameState("test", next)
	for id, layout := range layouts {
		state.Boards[id].Cells = cells(t, layout)
		state.Boards[id] = state.Boards[id].Refresh()
	}

	state = state.Refresh()
	require.NoError(t, state.Validate())

	return state
}

func collect(state entity.GameState) []entity.Move {
	var moves []entity.Move
	for move := range LegalMoves(state) {
		moves = append(moves, move)
	}

	return moves
}
