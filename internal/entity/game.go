package entity

import (
	"fmt"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/apperror"
)

// GameState is a snapshot of the nine sub-boards. It holds arrays only, so plain
// assignment produces an independent copy and == compares whole snapshots.
type GameState struct {
	ID      string              `json:"id"`
	Boards  [BoardSize]SubBoard `json:"boards"`
	Outcome Piece               `json:"outcome"`
	Line    Line                `json:"line"`
	Next    Piece               `json:"next"`
}

func NewGameState(id string, first Piece) GameState {
	state := GameState{
		ID:   id,
		Next: first,
	}

	for i := range state.Boards {
		state.Boards[i].ID = i
	}

	return state
}

// Outcomes returns the nine sub-board outcomes, the marks of the meta-board.
func (that GameState) Outcomes() [BoardSize]Piece {
	var outcomes [BoardSize]Piece
	for i, board := range that.Boards {
		outcomes[i] = board.Outcome
	}

	return outcomes
}

// Refresh recomputes the overall outcome and line from the sub-board outcomes.
func (that GameState) Refresh() GameState {
	that.Outcome, that.Line = Evaluate(that.Outcomes())
	return that
}

func (that GameState) IsFinished() bool {
	return that.Outcome != Empty
}

// Validate rejects snapshots that could not have been produced by legal play.
func (that GameState) Validate() error {
	if !that.Next.IsPlayer() {
		return fmt.Errorf("%w: next to move is %q", apperror.ErrInvalidState, that.Next)
	}

	for i, board := range that.Boards {
		if board.ID != i {
			return fmt.Errorf("%w: board at position %d has id %d", apperror.ErrInvalidState, i, board.ID)
		}

		if err := board.Validate(); err != nil {
			return err
		}
	}

	outcome, line := Evaluate(that.Outcomes())
	if outcome != that.Outcome || line != that.Line {
		return fmt.Errorf("%w: overall outcome %q%v does not match boards", apperror.ErrInvalidState, that.Outcome, that.Line)
	}

	return nil
}

// Move targets one cell of one sub-board.
type Move struct {
	Board  int `json:"board"`
	Square int `json:"square"`
}

func (that Move) Validate() error {
	if that.Board < 0 || that.Board >= BoardSize {
		return fmt.Errorf("%w: board %d out of range", apperror.ErrInvalidMove, that.Board)
	}

	if that.Square < 0 || that.Square >= BoardSize {
		return fmt.Errorf("%w: square %d out of range", apperror.ErrInvalidMove, that.Square)
	}

	return nil
}

func (that Move) String() string {
	return fmt.Sprintf("%d:%d", that.Board, that.Square)
}
