package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/entity"
)

var ErrPlayerNotFound = errors.New("player not found")

// PlayerRepository stores the roster of the games the bot takes part in.
type PlayerRepository interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	ListByGame(ctx context.Context, gameID string) ([]*entity.Player, error)
}

type dbPlayer struct {
	client *redis.Client
}

func NewPlayerRepository(client *redis.Client) PlayerRepository {
	return &dbPlayer{
		client: client,
	}
}

func playerKey(id string) string {
	return "player:" + id
}

func rosterKey(gameID string) string {
	return "game:" + gameID + ":players"
}

func (that *dbPlayer) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	playerJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, playerKey(player.ID), playerJSON, 0)
		if player.GameID != "" {
			pipe.SAdd(ctx, rosterKey(player.GameID), player.ID)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set player: %w", err)
	}

	return nil
}

func (that *dbPlayer) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	response, err := that.client.Get(ctx, playerKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrPlayerNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by ID: %w", err)
	}

	var existingPlayer entity.Player
	if err = json.Unmarshal([]byte(response), &existingPlayer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}

	return &existingPlayer, nil
}

func (that *dbPlayer) ListByGame(ctx context.Context, gameID string) ([]*entity.Player, error) {
	ids, err := that.client.SMembers(ctx, rosterKey(gameID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}

	players := make([]*entity.Player, 0, len(ids))
	for _, id := range ids {
		player, err := that.GetByID(ctx, id)
		if errors.Is(err, ErrPlayerNotFound) {
			continue
		}

		if err != nil {
			return nil, err
		}

		players = append(players, player)
	}

	return players, nil
}
