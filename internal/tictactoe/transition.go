package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/entity"
)

// Apply returns a new state with piece placed at move. The input state is not modified.
func Apply(state entity.GameState, move entity.Move, piece entity.Piece) (entity.GameState, error) {
	if err := validateMove(state, move, piece); err != nil {
		return state, err
	}

	board := state.Boards[move.Board]
	board.Cells[move.Square] = piece
	state.Boards[move.Board] = board.Refresh()

	state.Next = piece.Opponent()

	return state.Refresh(), nil
}

// validateMove - checks if the move is valid.
func validateMove(state entity.GameState, move entity.Move, piece entity.Piece) error {
	if err := move.Validate(); err != nil {
		return err
	}

	if !piece.IsPlayer() {
		return fmt.Errorf("%w: cannot place %q", apperror.ErrInvalidMove, piece)
	}

	board := state.Boards[move.Board]
	if board.IsDecided() {
		return fmt.Errorf("%w: board %d is already decided", apperror.ErrInvalidMove, move.Board)
	}

	if board.Cells[move.Square] != entity.Empty {
		return fmt.Errorf("%w: cell %s is already occupied", apperror.ErrInvalidMove, move)
	}

	return nil
}
