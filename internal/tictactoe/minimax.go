package tictactoe

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/entity"
)

// Minimax returns the value of state for self, searching depth plies.
// The maximizing side places self's piece and the minimizing side the opponent's,
// whatever state.Next says.
func Minimax(state entity.GameState, depth int, maximizing bool, self entity.Piece) (int, error) {
	s := &searcher{self: self}
	return s.minimax(state, depth, maximizing)
}

type searcher struct {
	self      entity.Piece
	alphaBeta bool
	nodes     int
}

func (that *searcher) search(state entity.GameState, depth int, maximizing bool) (int, error) {
	if that.alphaBeta {
		return that.alphaBetaSearch(state, depth, math.MinInt, math.MaxInt, maximizing)
	}

	return that.minimax(state, depth, maximizing)
}

func (that *searcher) mover(maximizing bool) entity.Piece {
	if maximizing {
		return that.self
	}

	return that.self.Opponent()
}

func (that *searcher) minimax(state entity.GameState, depth int, maximizing bool) (int, error) {
	that.nodes++

	if depth == 0 || state.IsFinished() {
		return Score(state, that.self), nil
	}

	piece := that.mover(maximizing)
	best := initScore(maximizing)
	visited := 0

	for move := range LegalMoves(state) {
		child, err := Apply(state, move, piece)
		if err != nil {
			return 0, fmt.Errorf("failed to apply %s: %w", move, err)
		}

		value, err := that.minimax(child, depth-1, !maximizing)
		if err != nil {
			return 0, err
		}

		if maximizing {
			best = max(best, value)
		} else {
			best = min(best, value)
		}
		visited++
	}

	if visited == 0 {
		return 0, fmt.Errorf("%w: no legal moves in undecided game %q", apperror.ErrInvariantViolation, state.ID)
	}

	return best, nil
}

// alphaBetaSearch returns the same values as minimax while skipping subtrees
// that cannot change the result inside the (alpha, beta) window.
func (that *searcher) alphaBetaSearch(state entity.GameState, depth, alpha, beta int, maximizing bool) (int, error) {
	that.nodes++

	if depth == 0 || state.IsFinished() {
		return Score(state, that.self), nil
	}

	piece := that.mover(maximizing)
	best := initScore(maximizing)
	visited := 0

	for move := range LegalMoves(state) {
		child, err := Apply(state, move, piece)
		if err != nil {
			return 0, fmt.Errorf("failed to apply %s: %w", move, err)
		}

		value, err := that.alphaBetaSearch(child, depth-1, alpha, beta, !maximizing)
		if err != nil {
			return 0, err
		}
		visited++

		if maximizing {
			best = max(best, value)
			alpha = max(alpha, best)
		} else {
			best = min(best, value)
			beta = min(beta, best)
		}

		if alpha >= beta {
			break
		}
	}

	if visited == 0 {
		return 0, fmt.Errorf("%w: no legal moves in undecided game %q", apperror.ErrInvariantViolation, state.ID)
	}

	return best, nil
}

func initScore(maximizing bool) int {
	if maximizing {
		return math.MinInt
	}

	return math.MaxInt
}
