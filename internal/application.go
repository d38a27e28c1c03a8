package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/config"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/repository"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/repository/storage"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/service"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/tictactoe"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/transport/websocket"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/usecase"
	"github.com/rocketscienceinc/supertictactoe-bot/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the bot until the game server connection drops or a signal arrives.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	bot, err := NewBot(conf)
	if err != nil {
		return err
	}

	gameRepo := repository.NewGameRepository(redisStorage.Connection)
	playerRepo := repository.NewPlayerRepository(redisStorage.Connection)
	botService := service.NewBotService(logger, bot, conf.SearchDepth)

	session := usecase.NewSession(logger, gameRepo, playerRepo, botService, usecase.Options{
		IdleTimeout:     conf.IdleTimeout,
		DecisionTimeout: conf.DecisionTimeout,
	})

	client := websocket.New(logger, conf.ServerURL, bot.Piece(), session)
	session.SetMover(client)

	server := rest.NewServer(logger, conf.HTTPPort, session)

	log.Info("starting bot", "piece", bot.Piece().String(), "depth", conf.SearchDepth, "server", conf.ServerURL)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := client.Run(groupCtx); err != nil {
			return fmt.Errorf("websocket client error: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		return session.Run(groupCtx)
	})

	group.Go(func() error {
		if err := server.Run(groupCtx); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}

		return nil
	})

	if err = group.Wait(); err != nil {
		return err
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// NewBot builds the search engine for the configured identity.
func NewBot(conf *config.Config) (*tictactoe.Bot, error) {
	var options []tictactoe.Option
	if !conf.DisablePruning {
		options = append(options, tictactoe.WithAlphaBeta())
	}

	bot, err := tictactoe.NewBot(conf.BotPiece(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return bot, nil
}
