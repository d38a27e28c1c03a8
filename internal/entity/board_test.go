package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = PieceX
	o = PieceO
	e = Empty
)

func TestEvaluate(t *testing.T) {
	t.Run("Returns PieceX and the row when X fills the top row", func(t *testing.T) {
		// Given: X holds the top row
		marks := [BoardSize]Piece{
			x, x, x,
			o, o, e,
			e, e, e,
		}

		// When: evaluating the board
		outcome, line := Evaluate(marks)

		// Then: X wins on cells 0, 1, 2
		assert.Equal(t, PieceX, outcome)
		assert.Equal(t, Line{0, 1, 2}, line)
	})

	t.Run("Returns PieceO on the anti-diagonal", func(t *testing.T) {
		// Given: O holds the anti-diagonal
		marks := [BoardSize]Piece{
			x, x, o,
			e, o, e,
			o, e, x,
		}

		// When: evaluating the board
		outcome, line := Evaluate(marks)

		// Then: O wins on cells 2, 4, 6
		assert.Equal(t, PieceO, outcome)
		assert.Equal(t, Line{2, 4, 6}, line)
	})

	t.Run("Reports the first line in fixed order when two lines win", func(t *testing.T) {
		// Given: X holds both the middle column and the middle row
		marks := [BoardSize]Piece{
			o, x, o,
			x, x, x,
			o, x, o,
		}

		// When: evaluating the board
		outcome, line := Evaluate(marks)

		// Then: rows are checked before columns
		assert.Equal(t, PieceX, outcome)
		assert.Equal(t, Line{3, 4, 5}, line)
	})

	t.Run("Returns Draw for a full board without a line", func(t *testing.T) {
		// Given: a full board nobody won
		marks := [BoardSize]Piece{
			x, o, x,
			o, x, o,
			o, x, o,
		}

		// When: evaluating the board
		outcome, line := Evaluate(marks)

		// Then: the board is drawn and has no line
		assert.Equal(t, Draw, outcome)
		assert.True(t, line.IsZero())
	})

	t.Run("Returns Empty while the board is open", func(t *testing.T) {
		// Given: a board with free cells and no line
		marks := [BoardSize]Piece{
			x, o, e,
			e, x, e,
			e, e, o,
		}

		// When: evaluating the board
		outcome, line := Evaluate(marks)

		// Then: the board is undecided
		assert.Equal(t, Empty, outcome)
		assert.Equal(t, NoLine, line)
	})

	t.Run("Draw marks never form a line", func(t *testing.T) {
		// Given: a meta-board whose top row is three drawn boards
		marks := [BoardSize]Piece{
			Draw, Draw, Draw,
			x, e, e,
			e, e, o,
		}

		// When: evaluating the meta-board
		outcome, line := Evaluate(marks)

		// Then: nothing is decided
		assert.Equal(t, Empty, outcome)
		assert.True(t, line.IsZero())
	})
}

func TestSubBoard_Validate(t *testing.T) {
	t.Run("Accepts a refreshed board", func(t *testing.T) {
		// Given: a won board with its outcome derived from the cells
		board := SubBoard{ID: 4, Cells: [BoardSize]Piece{x, x, x, o, o, e, e, e, e}}.Refresh()

		// Then: the board is consistent
		require.NoError(t, board.Validate())
		assert.True(t, board.IsDecided())
	})

	t.Run("Rejects an outcome that the cells do not support", func(t *testing.T) {
		// Given: a board claiming a win with empty cells
		board := SubBoard{ID: 1, Outcome: PieceO, Line: Line{0, 1, 2}}

		// Then: validation fails
		require.Error(t, board.Validate())
	})

	t.Run("Rejects a draw mark inside a cell", func(t *testing.T) {
		// Given: a board with a Draw cell
		board := SubBoard{ID: 2, Cells: [BoardSize]Piece{Draw}}

		// Then: validation fails
		require.Error(t, board.Validate())
	})
}

func TestLine_JSON(t *testing.T) {
	// Given: a board without a line and a board with one
	open := SubBoard{ID: 0}
	won := SubBoard{ID: 1, Cells: [BoardSize]Piece{o, e, e, o, e, e, o, e, e}}.Refresh()

	// When: marshaling both
	openJSON, err := json.Marshal(open)
	require.NoError(t, err)
	wonJSON, err := json.Marshal(won)
	require.NoError(t, err)

	// Then: the missing line is null and cells use the wire marks
	assert.JSONEq(t, `{"id":0,"cells":["","","","","","","","",""],"outcome":"","line":null}`, string(openJSON))
	assert.JSONEq(t, `{"id":1,"cells":["O","","","O","","","O","",""],"outcome":"O","line":[0,3,6]}`, string(wonJSON))

	var decoded SubBoard
	require.NoError(t, json.Unmarshal(wonJSON, &decoded))
	assert.Equal(t, won, decoded)
}
