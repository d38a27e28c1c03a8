package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	t.Run("Completing a row wins the sub-board", func(t *testing.T) {
		// Given: board 4 has X in cells 0 and 1
		state := stateWith(t, entity.PieceX, map[int]string{
			4: "XX.......",
		})
		before := state

		// When: X plays the third cell
		next, err := Apply(state, entity.Move{Board: 4, Square: 2}, entity.PieceX)
		require.NoError(t, err)

		// Then: board 4 is won by X on the top row
		assert.Equal(t, entity.PieceX, next.Boards[4].Outcome)
		assert.Equal(t, entity.Line{0, 1, 2}, next.Boards[4].Line)
		assert.Equal(t, entity.PieceO, next.Next)
		assert.Equal(t, entity.Empty, next.Outcome)
		require.NoError(t, next.Validate())

		// And: the input state is untouched
		assert.Equal(t, before, state)
		assert.Equal(t, entity.Empty, state.Boards[4].Cells[2])
	})

	t.Run("Places the given piece regardless of next to move", func(t *testing.T) {
		// Given: X is next to move
		state := entity.NewGameState("g", entity.PieceX)

		// When: an O move is simulated
		next, err := Apply(state, entity.Move{Board: 0, Square: 0}, entity.PieceO)
		require.NoError(t, err)

		// Then: the cell holds O and X moves next
		assert.Equal(t, entity.PieceO, next.Boards[0].Cells[0])
		assert.Equal(t, entity.PieceX, next.Next)
	})

	t.Run("Winning a third board in line wins the game", func(t *testing.T) {
		// Given: O won boards 2 and 4, and board 6 needs one more O
		state := stateWith(t, entity.PieceO, map[int]string{
			2: "OOOXX....",
			4: "O..O..O.X",
			6: "X.OXO....",
		})

		// When: O completes the anti-diagonal of board 6
		next, err := Apply(state, entity.Move{Board: 6, Square: 6}, entity.PieceO)
		require.NoError(t, err)

		// Then: the game is won on the meta anti-diagonal
		assert.Equal(t, entity.PieceO, next.Boards[6].Outcome)
		assert.Equal(t, entity.PieceO, next.Outcome)
		assert.Equal(t, entity.Line{2, 4, 6}, next.Line)
	})

	t.Run("A drawn board does not complete a meta-line", func(t *testing.T) {
		// Given: X won boards 0 and 1, board 2 is one move from a draw
		state := stateWith(t, entity.PieceX, map[int]string{
			0: "XXXOO....",
			1: "XXXOO....",
			2: "XOXOXOOX.",
		})

		// When: O fills the last cell of board 2
		next, err := Apply(state, entity.Move{Board: 2, Square: 8}, entity.PieceO)
		require.NoError(t, err)

		// Then: board 2 is drawn and the game continues
		assert.Equal(t, entity.Draw, next.Boards[2].Outcome)
		assert.True(t, next.Boards[2].Line.IsZero())
		assert.Equal(t, entity.Empty, next.Outcome)
	})

	t.Run("Rejects occupied cells", func(t *testing.T) {
		state := stateWith(t, entity.PieceO, map[int]string{
			3: "X........",
		})

		_, err := Apply(state, entity.Move{Board: 3, Square: 0}, entity.PieceO)

		assert.ErrorIs(t, err, apperror.ErrInvalidMove)
	})

	t.Run("Rejects moves into decided boards", func(t *testing.T) {
		state := stateWith(t, entity.PieceO, map[int]string{
			3: "XXXOO....",
		})

		_, err := Apply(state, entity.Move{Board: 3, Square: 8}, entity.PieceO)

		assert.ErrorIs(t, err, apperror.ErrInvalidMove)
	})

	t.Run("Rejects out of range moves and non-player pieces", func(t *testing.T) {
		state := entity.NewGameState("g", entity.PieceX)

		_, err := Apply(state, entity.Move{Board: 9, Square: 0}, entity.PieceX)
		assert.ErrorIs(t, err, apperror.ErrInvalidMove)

		_, err = Apply(state, entity.Move{Board: 0, Square: 0}, entity.Draw)
		assert.ErrorIs(t, err, apperror.ErrInvalidMove)
	})
}

func TestScore(t *testing.T) {
	// Given: X won two boards, O won one, one board is drawn
	state := stateWith(t, entity.PieceX, map[int]string{
		0: "XXXOO....",
		1: "X..X..X.O",
		5: "OOOXX.X..",
		7: "XOXOXOOXO",
	})

	// Then: the score is mirrored between the two players
	assert.Equal(t, 10, Score(state, entity.PieceX))
	assert.Equal(t, -10, Score(state, entity.PieceO))
	assert.Equal(t, 0, Score(entity.NewGameState("fresh", entity.PieceX), entity.PieceX))
}
