package tictactoe

import (
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/entity"
)

type Option func(bot *Bot)

// WithRand sets the source used to break ties between equally valued moves.
func WithRand(rnd *rand.Rand) Option {
	return func(bot *Bot) {
		if rnd != nil {
			bot.rnd = rnd
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(bot *Bot) {
		bot.rnd = rand.New(rand.NewSource(seed))
	}
}

// WithAlphaBeta enables alpha-beta pruning below the root. Values and therefore the
// set of tied moves are the same as without it.
func WithAlphaBeta() Option {
	return func(bot *Bot) {
		bot.alphaBeta = true
	}
}

// Stats describes the last completed decision.
type Stats struct {
	Nodes      int
	Value      int
	Candidates int
	Tied       int
}

// Bot picks moves for one fixed piece.
type Bot struct {
	self      entity.Piece
	alphaBeta bool

	mu    sync.Mutex
	rnd   *rand.Rand
	stats Stats
}

func NewBot(self entity.Piece, options ...Option) (*Bot, error) {
	if !self.IsPlayer() {
		return nil, fmt.Errorf("%w: bot cannot play %q", apperror.ErrInvalidPiece, self)
	}

	bot := &Bot{
		self: self,
		rnd:  rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}

	for _, option := range options {
		option(bot)
	}

	return bot, nil
}

func (that *Bot) Piece() entity.Piece {
	return that.self
}

// Decide returns the best move for the bot's piece searching depth plies.
// ok is false when the game has no legal moves left.
func (that *Bot) Decide(state entity.GameState, depth int) (entity.Move, bool, error) {
	if depth < 1 {
		return entity.Move{}, false, fmt.Errorf("search depth must be at least 1, got %d", depth)
	}

	if err := state.Validate(); err != nil {
		return entity.Move{}, false, fmt.Errorf("invalid snapshot: %w", err)
	}

	s := &searcher{self: that.self, alphaBeta: that.alphaBeta}

	bestValue := math.MinInt
	var bestMoves []entity.Move
	candidates := 0

	for move := range LegalMoves(state) {
		child, err := Apply(state, move, that.self)
		if err != nil {
			return entity.Move{}, false, fmt.Errorf("failed to apply %s: %w", move, err)
		}

		value, err := s.search(child, depth-1, false)
		if err != nil {
			return entity.Move{}, false, fmt.Errorf("search failed at %s: %w", move, err)
		}
		candidates++

		switch {
		case value > bestValue:
			bestValue = value
			bestMoves = append(bestMoves[:0], move)
		case value == bestValue:
			bestMoves = append(bestMoves, move)
		}
	}

	if len(bestMoves) == 0 {
		that.setStats(Stats{Nodes: s.nodes})
		return entity.Move{}, false, nil
	}

	that.mu.Lock()
	chosen := bestMoves[that.rnd.Intn(len(bestMoves))]
	that.stats = Stats{
		Nodes:      s.nodes,
		Value:      bestValue,
		Candidates: candidates,
		Tied:       len(bestMoves),
	}
	that.mu.Unlock()

	return chosen, true, nil
}

// Stats returns the statistics of the last completed Decide call.
func (that *Bot) Stats() Stats {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.stats
}

func (that *Bot) setStats(stats Stats) {
	that.mu.Lock()
	that.stats = stats
	that.mu.Unlock()
}
