package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/tictactoe"
)

type BotService interface {
	Piece() entity.Piece
	Decide(ctx context.Context, state entity.GameState) (entity.Move, bool, error)
}

type decider interface {
	Piece() entity.Piece
	Decide(state entity.GameState, depth int) (entity.Move, bool, error)
	Stats() tictactoe.Stats
}

type botService struct {
	logger *slog.Logger
	bot    decider
	depth  int
}

func NewBotService(logger *slog.Logger, bot decider, depth int) BotService {
	return &botService{
		logger: logger,
		bot:    bot,
		depth:  depth,
	}
}

func (that *botService) Piece() entity.Piece {
	return that.bot.Piece()
}

type decision struct {
	move entity.Move
	ok   bool
	err  error
}

// Decide runs the search and waits for it or for ctx, whichever comes first.
// A search that loses the race keeps running until it completes and its result is dropped.
func (that *botService) Decide(ctx context.Context, state entity.GameState) (entity.Move, bool, error) {
	log := that.logger.With("method", "Decide", "game_id", state.ID, "piece", that.bot.Piece().String())

	done := make(chan decision, 1)
	started := time.Now()

	go func() {
		move, ok, err := that.bot.Decide(state, that.depth)
		done <- decision{move: move, ok: ok, err: err}
	}()

	select {
	case <-ctx.Done():
		log.Warn("decision abandoned", "depth", that.depth, "elapsed", time.Since(started), "error", ctx.Err())
		return entity.Move{}, false, fmt.Errorf("decision abandoned: %w", ctx.Err())
	case result := <-done:
		if result.err != nil {
			log.Error("decision failed", "error", result.err)
			return entity.Move{}, false, fmt.Errorf("bot failed to decide: %w", result.err)
		}

		if !result.ok {
			log.Info("no legal moves left")
			return entity.Move{}, false, nil
		}

		stats := that.bot.Stats()
		log.Info("move chosen",
			"move", result.move.String(),
			"value", stats.Value,
			"tied", stats.Tied,
			"candidates", stats.Candidates,
			"nodes", stats.Nodes,
			"elapsed", time.Since(started),
		)

		return result.move, true, nil
	}
}
