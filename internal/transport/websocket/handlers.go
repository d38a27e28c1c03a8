package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/usecase"
)

func (that *Client) handleGameStart(ctx context.Context, raw json.RawMessage) error {
	var payload GameStartPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal game start: %w", err)
	}

	history := make([]usecase.PlayedMove, 0, len(payload.History))
	for _, played := range payload.History {
		history = append(history, usecase.PlayedMove{Move: played.Move(), Piece: played.Piece})
	}

	if err := that.session.Start(ctx, payload.GameID, payload.First, history); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	return nil
}

func (that *Client) handleGameResume(ctx context.Context, raw json.RawMessage) error {
	var payload GameResumePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal game resume: %w", err)
	}

	if err := that.session.Resume(ctx, payload.GameID); err != nil {
		return fmt.Errorf("failed to resume game: %w", err)
	}

	return nil
}

func (that *Client) handleGameMove(ctx context.Context, raw json.RawMessage) error {
	var payload MovePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal move: %w", err)
	}

	if err := that.session.ApplyMove(ctx, payload.GameID, payload.Move(), payload.Piece); err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	return nil
}

func (that *Client) handlePlayerJoined(ctx context.Context, raw json.RawMessage) error {
	var payload PlayerPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal player: %w", err)
	}

	return that.session.PlayerJoined(ctx, entity.Player{ID: payload.ID, Piece: payload.Piece})
}

func (that *Client) handlePlayerLeft(ctx context.Context, raw json.RawMessage) error {
	var payload PlayerPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal player: %w", err)
	}

	return that.session.PlayerLeft(ctx, payload.ID)
}

func (that *Client) relay(kind string) handler {
	return func(_ context.Context, raw json.RawMessage) error {
		var payload ChatPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal %s: %w", kind, err)
		}

		that.session.Relay(kind, payload.From, payload.Text)

		return nil
	}
}
