package apperror

import "errors"

var (
	ErrInvalidMove        = errors.New("invalid move")
	ErrInvalidState       = errors.New("invalid game state")
	ErrInvalidPiece       = errors.New("invalid piece")
	ErrInvariantViolation = errors.New("search invariant violated")
	ErrGameFinished       = errors.New("game is already finished")
	ErrGameIsNotStarted   = errors.New("game is not started")
	ErrUnknownGame        = errors.New("unknown game")
)
