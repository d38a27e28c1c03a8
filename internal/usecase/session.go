package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/tictactoe"
)

const minWatchInterval = 10 * time.Millisecond

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, state entity.GameState) error
	GetByID(ctx context.Context, id string) (entity.GameState, error)
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	ListByGame(ctx context.Context, gameID string) ([]*entity.Player, error)
}

type botService interface {
	Piece() entity.Piece
	Decide(ctx context.Context, state entity.GameState) (entity.Move, bool, error)
}

// Mover transmits the bot's moves to the game server.
type Mover interface {
	SendMove(ctx context.Context, gameID string, move entity.Move) error
}

// PlayedMove is one entry of a game history.
type PlayedMove struct {
	entity.Move
	Piece entity.Piece
}

type Options struct {
	// IdleTimeout forces a decision when no move was seen for this long. Zero disables it.
	IdleTimeout time.Duration
	// DecisionTimeout bounds a single decision. Zero means no bound.
	DecisionTimeout time.Duration
}

// Session owns the authoritative game state of one bot seat and decides when to move.
type Session struct {
	logger  *slog.Logger
	games   gameRepo
	players playerRepo
	bot     botService
	opts    Options
	now     func() time.Time

	mu           sync.Mutex
	mover        Mover
	state        entity.GameState
	started      bool
	closed       bool
	generation   uint64
	pending      entity.Move
	hasPending   bool
	deciding     bool
	lastActivity time.Time

	decisions sync.WaitGroup
}

func NewSession(logger *slog.Logger, games gameRepo, players playerRepo, bot botService, opts Options) *Session {
	return &Session{
		logger:  logger.With("component", "session"),
		games:   games,
		players: players,
		bot:     bot,
		opts:    opts,
		now:     time.Now,
	}
}

// SetMover sets where chosen moves are sent.
func (that *Session) SetMover(mover Mover) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.mover = mover
}

// Start replays history from an empty board and makes the result the current game.
func (that *Session) Start(ctx context.Context, gameID string, first entity.Piece, history []PlayedMove) error {
	if !first.IsPlayer() {
		return fmt.Errorf("%w: first piece %q", apperror.ErrInvalidPiece, first)
	}

	state := entity.NewGameState(gameID, first)
	for i, played := range history {
		next, err := tictactoe.Apply(state, played.Move, played.Piece)
		if err != nil {
			return fmt.Errorf("failed to replay history entry %d: %w", i, err)
		}

		state = next
	}

	that.install(ctx, state)
	that.logger.Info("game started", "game_id", gameID, "history", len(history), "next", state.Next.String())

	that.afterChange(ctx, state)

	return nil
}

// Resume restores the last stored snapshot of gameID.
func (that *Session) Resume(ctx context.Context, gameID string) error {
	state, err := that.games.GetByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	if err = state.Validate(); err != nil {
		return fmt.Errorf("stored game %s: %w", gameID, err)
	}

	that.install(ctx, state)
	that.logger.Info("game resumed", "game_id", gameID, "next", state.Next.String())

	that.afterChange(ctx, state)

	return nil
}

// ApplyMove applies a move confirmed by the server. The bot's own moves are applied
// here too, once the server has confirmed them.
func (that *Session) ApplyMove(ctx context.Context, gameID string, move entity.Move, piece entity.Piece) error {
	log := that.logger.With("method", "ApplyMove", "game_id", gameID)

	that.mu.Lock()

	if !that.started || that.state.ID != gameID {
		that.mu.Unlock()
		return fmt.Errorf("%w: %s", apperror.ErrUnknownGame, gameID)
	}

	if that.state.IsFinished() {
		that.mu.Unlock()
		return fmt.Errorf("%w: %s", apperror.ErrGameFinished, gameID)
	}

	next, err := tictactoe.Apply(that.state, move, piece)
	if err != nil {
		that.mu.Unlock()
		return fmt.Errorf("failed to apply move %s: %w", move, err)
	}

	self := that.bot.Piece()
	if piece == self {
		if that.hasPending && that.pending != move {
			log.Warn("confirmed move differs from the one sent", "sent", that.pending.String(), "confirmed", move.String())
		}
		that.hasPending = false
	}

	that.state = next
	that.generation++
	that.lastActivity = that.now()
	that.mu.Unlock()

	log.Debug("move applied", "move", move.String(), "piece", piece.String(), "next", next.Next.String())

	that.persist(ctx, next)

	if piece != self {
		that.afterChange(ctx, next)
	} else if next.IsFinished() {
		that.logFinished(next)
	}

	return nil
}

// PlayerJoined records a player in the roster of the current game.
func (that *Session) PlayerJoined(ctx context.Context, player entity.Player) error {
	if player.GameID == "" {
		state, ok := that.Snapshot()
		if !ok {
			return apperror.ErrGameIsNotStarted
		}

		player.GameID = state.ID
	}

	player.Online = true
	if err := that.players.CreateOrUpdate(ctx, &player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	that.logger.Info("player joined", "player_id", player.ID, "piece", player.Piece.String())

	return nil
}

// PlayerLeft marks a known player as offline.
func (that *Session) PlayerLeft(ctx context.Context, playerID string) error {
	player, err := that.players.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to get player: %w", err)
	}

	player.Online = false
	if err = that.players.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	that.logger.Info("player left", "player_id", playerID)

	return nil
}

func (that *Session) Roster(ctx context.Context) ([]*entity.Player, error) {
	state, ok := that.Snapshot()
	if !ok {
		return nil, apperror.ErrGameIsNotStarted
	}

	players, err := that.players.ListByGame(ctx, state.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	return players, nil
}

// Relay logs chat and emote traffic; the bot does not answer it.
func (that *Session) Relay(kind, from, text string) {
	that.logger.Debug("relayed message", "kind", kind, "from", from, "text", text)
}

// Snapshot returns a copy of the current game.
func (that *Session) Snapshot() (entity.GameState, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state, that.started
}

// Run watches for idle games until ctx is done, then waits for running decisions.
func (that *Session) Run(ctx context.Context) error {
	defer that.close()

	if that.opts.IdleTimeout <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(max(that.opts.IdleTimeout/4, minWatchInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			that.checkIdle(ctx)
		}
	}
}

// close stops new decisions and waits for the running ones.
func (that *Session) close() {
	that.mu.Lock()
	that.closed = true
	that.mu.Unlock()

	that.decisions.Wait()
}

// Wait blocks until decisions started so far have finished.
func (that *Session) Wait() {
	that.decisions.Wait()
}

func (that *Session) checkIdle(ctx context.Context) {
	that.mu.Lock()
	idle := that.started &&
		!that.state.IsFinished() &&
		!that.deciding &&
		that.now().Sub(that.lastActivity) >= that.opts.IdleTimeout

	if idle && that.hasPending {
		that.logger.Warn("pending move was never confirmed", "move", that.pending.String())
		that.hasPending = false
	}
	that.mu.Unlock()

	if idle {
		that.trigger(ctx, "idle")
	}
}

func (that *Session) install(ctx context.Context, state entity.GameState) {
	that.mu.Lock()
	that.state = state
	that.started = true
	that.generation++
	that.hasPending = false
	that.lastActivity = that.now()
	that.mu.Unlock()

	that.persist(ctx, state)
}

func (that *Session) afterChange(ctx context.Context, state entity.GameState) {
	if state.IsFinished() {
		that.logFinished(state)
		return
	}

	if state.Next == that.bot.Piece() {
		that.trigger(ctx, "turn")
	}
}

func (that *Session) trigger(ctx context.Context, reason string) {
	that.mu.Lock()
	if that.closed || ctx.Err() != nil {
		that.mu.Unlock()
		return
	}
	// Add under mu so it never overlaps the Wait in close
	that.decisions.Add(1)
	that.mu.Unlock()

	go func() {
		defer that.decisions.Done()

		if err := that.decide(ctx, reason); err != nil {
			that.logger.Error("decision failed", "reason", reason, "error", err)
		}
	}()
}

func (that *Session) decide(ctx context.Context, reason string) error {
	log := that.logger.With("method", "decide", "reason", reason)

	that.mu.Lock()
	if !that.started || that.state.IsFinished() || that.hasPending || that.deciding {
		that.mu.Unlock()
		return nil
	}

	snapshot := that.state
	generation := that.generation
	mover := that.mover
	that.deciding = true
	that.mu.Unlock()

	decideCtx := ctx
	if that.opts.DecisionTimeout > 0 {
		var cancel context.CancelFunc
		decideCtx, cancel = context.WithTimeout(ctx, that.opts.DecisionTimeout)
		defer cancel()
	}

	move, ok, err := that.bot.Decide(decideCtx, snapshot)

	that.mu.Lock()
	that.deciding = false

	if generation != that.generation {
		current := that.state
		that.mu.Unlock()

		log.Info("discarding decision for an outdated snapshot", "error", err)
		that.afterChange(ctx, current)

		return nil
	}

	if err != nil {
		that.mu.Unlock()

		if errors.Is(err, context.Canceled) {
			return nil
		}

		return fmt.Errorf("failed to decide: %w", err)
	}

	if !ok {
		that.mu.Unlock()
		log.Info("no move available", "game_id", snapshot.ID)

		return nil
	}

	if mover == nil {
		that.mu.Unlock()
		return fmt.Errorf("no mover to send %s", move)
	}

	that.pending = move
	that.hasPending = true
	that.lastActivity = that.now()
	that.mu.Unlock()

	if err = mover.SendMove(ctx, snapshot.ID, move); err != nil {
		that.mu.Lock()
		that.hasPending = false
		that.mu.Unlock()

		return fmt.Errorf("failed to send move %s: %w", move, err)
	}

	log.Info("move sent", "game_id", snapshot.ID, "move", move.String())

	return nil
}

func (that *Session) persist(ctx context.Context, state entity.GameState) {
	if err := that.games.CreateOrUpdate(ctx, state); err != nil {
		that.logger.Warn("failed to store game", "game_id", state.ID, "error", err)
	}
}

func (that *Session) logFinished(state entity.GameState) {
	that.logger.Info("game finished", "game_id", state.ID, "outcome", state.Outcome.String(), "line", state.Line)
}
