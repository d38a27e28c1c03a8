package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/entity"
)

const (
	actionGameStart   = "game:start"
	actionGameResume  = "game:resume"
	actionGameMove    = "game:move"
	actionPlayerJoin  = "player:joined"
	actionPlayerLeave = "player:left"
	actionChat        = "chat"
	actionEmote       = "emote"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type GameStartPayload struct {
	GameID  string        `json:"game_id"`
	First   entity.Piece  `json:"first"`
	History []MovePayload `json:"history"`
}

type GameResumePayload struct {
	GameID string `json:"game_id"`
}

type MovePayload struct {
	GameID string       `json:"game_id,omitempty"`
	Board  int          `json:"board"`
	Square int          `json:"square"`
	Piece  entity.Piece `json:"piece,omitempty"`
}

func (that MovePayload) Move() entity.Move {
	return entity.Move{Board: that.Board, Square: that.Square}
}

type PlayerPayload struct {
	ID    string       `json:"id"`
	Piece entity.Piece `json:"piece,omitempty"`
}

type ChatPayload struct {
	From string `json:"from"`
	Text string `json:"text"`
}
