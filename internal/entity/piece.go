package entity

import (
	"fmt"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/apperror"
)

// Piece is a cell mark or a board outcome.
type Piece uint8

const (
	Empty Piece = iota
	Draw
	PieceX
	PieceO
)

const (
	markEmpty = ""
	markDraw  = "-"
	markX     = "X"
	markO     = "O"
)

func (that Piece) String() string {
	switch that {
	case Empty:
		return markEmpty
	case Draw:
		return markDraw
	case PieceX:
		return markX
	case PieceO:
		return markO
	default:
		return fmt.Sprintf("Piece(%d)", uint8(that))
	}
}

// IsPlayer reports whether the piece is one of the two players.
func (that Piece) IsPlayer() bool {
	return that == PieceX || that == PieceO
}

// Opponent returns the other player. Non-player pieces map to themselves.
func (that Piece) Opponent() Piece {
	switch that {
	case PieceX:
		return PieceO
	case PieceO:
		return PieceX
	default:
		return that
	}
}

func (that Piece) MarshalText() ([]byte, error) {
	if that > PieceO {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidPiece, uint8(that))
	}

	return []byte(that.String()), nil
}

func (that *Piece) UnmarshalText(text []byte) error {
	piece, err := ParsePiece(string(text))
	if err != nil {
		return err
	}

	*that = piece

	return nil
}

// ParsePiece converts the wire form ("", "-", "X", "O") to a Piece.
func ParsePiece(mark string) (Piece, error) {
	switch mark {
	case markEmpty:
		return Empty, nil
	case markDraw:
		return Draw, nil
	case markX, "x":
		return PieceX, nil
	case markO, "o":
		return PieceO, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidPiece, mark)
	}
}

// ParsePlayer is ParsePiece restricted to X and O.
func ParsePlayer(mark string) (Piece, error) {
	piece, err := ParsePiece(mark)
	if err != nil {
		return Empty, err
	}

	if !piece.IsPlayer() {
		return Empty, fmt.Errorf("%w: %q is not a player", apperror.ErrInvalidPiece, mark)
	}

	return piece, nil
}
