package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/apperror"
)

const BoardSize = 9

// WinCombos are checked in this order; the first match is the reported line.
var WinCombos = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Line is a triple of board indices. The zero value means no line.
type Line [3]int

var NoLine = Line{}

func (that Line) IsZero() bool {
	return that == NoLine
}

func (that Line) MarshalJSON() ([]byte, error) {
	if that.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal([3]int(that))
}

func (that *Line) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = NoLine
		return nil
	}

	var cells [3]int
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("failed to unmarshal line: %w", err)
	}

	*that = cells

	return nil
}

// Evaluate returns the outcome of nine marks: the winner and its line, Draw when every
// mark is set and nothing won, Empty while the board is still open.
// Only X and O form lines; Draw marks fill a board without ever winning it.
func Evaluate(marks [BoardSize]Piece) (Piece, Line) {
	for _, combo := range WinCombos {
		a, b, c := marks[combo[0]], marks[combo[1]], marks[combo[2]]
		if a.IsPlayer() && a == b && b == c {
			return a, combo
		}
	}

	for _, mark := range marks {
		if mark == Empty {
			return Empty, NoLine
		}
	}

	return Draw, NoLine
}

// SubBoard is one of the nine small boards. Outcome Empty means undecided.
type SubBoard struct {
	ID      int              `json:"id"`
	Cells   [BoardSize]Piece `json:"cells"`
	Outcome Piece            `json:"outcome"`
	Line    Line             `json:"line"`
}

func (that SubBoard) IsDecided() bool {
	return that.Outcome != Empty
}

// Refresh recomputes the outcome and line from the cells.
func (that SubBoard) Refresh() SubBoard {
	that.Outcome, that.Line = Evaluate(that.Cells)
	return that
}

// Validate checks that the stored outcome and line agree with the cells.
func (that SubBoard) Validate() error {
	for i, cell := range that.Cells {
		if cell != Empty && !cell.IsPlayer() {
			return fmt.Errorf("%w: board %d cell %d holds %q", apperror.ErrInvalidState, that.ID, i, cell)
		}
	}

	outcome, line := Evaluate(that.Cells)
	if outcome != that.Outcome || line != that.Line {
		return fmt.Errorf("%w: board %d outcome %q%v does not match cells", apperror.ErrInvalidState, that.ID, that.Outcome, that.Line)
	}

	return nil
}
