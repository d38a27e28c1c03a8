package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/usecase"
)

var (
	ErrNotConnected  = errors.New("not connected to the game server")
	ErrUnknownAction = errors.New("unknown action")
)

type session interface {
	Start(ctx context.Context, gameID string, first entity.Piece, history []usecase.PlayedMove) error
	Resume(ctx context.Context, gameID string) error
	ApplyMove(ctx context.Context, gameID string, move entity.Move, piece entity.Piece) error
	PlayerJoined(ctx context.Context, player entity.Player) error
	PlayerLeft(ctx context.Context, playerID string) error
	Relay(kind, from, text string)
}

type handler func(ctx context.Context, payload json.RawMessage) error

// Client relays game server events to the session and sends the bot's moves back.
type Client struct {
	logger   *slog.Logger
	url      string
	piece    entity.Piece
	session  session
	handlers map[string]handler

	mu   sync.Mutex
	conn *websocket.Conn
}

func New(logger *slog.Logger, serverURL string, piece entity.Piece, session session) *Client {
	client := &Client{
		logger:  logger.With("component", "websocket"),
		url:     serverURL,
		piece:   piece,
		session: session,
	}

	client.handlers = map[string]handler{
		actionGameStart:   client.handleGameStart,
		actionGameResume:  client.handleGameResume,
		actionGameMove:    client.handleGameMove,
		actionPlayerJoin:  client.handlePlayerJoined,
		actionPlayerLeave: client.handlePlayerLeft,
		actionChat:        client.relay(actionChat),
		actionEmote:       client.relay(actionEmote),
	}

	return client
}

// Run connects to the server and handles messages until ctx is done or the connection drops.
func (that *Client) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	endpoint, err := that.endpoint()
	if err != nil {
		return err
	}

	conn, _, err := websocket.Dial(ctx, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", that.url, err)
	}

	that.setConn(conn)
	defer that.setConn(nil)

	log.Info("connected to game server", "url", that.url, "piece", that.piece.String())

	err = that.handleMessages(ctx, conn)
	if ctx.Err() != nil {
		conn.Close(websocket.StatusNormalClosure, "shutting down")
		return nil
	}

	conn.Close(websocket.StatusInternalError, "read failed")

	return err
}

// SendMove - sends the bot's move to the server.
func (that *Client) SendMove(ctx context.Context, gameID string, move entity.Move) error {
	that.mu.Lock()
	conn := that.conn
	that.mu.Unlock()

	if conn == nil {
		return ErrNotConnected
	}

	payload, err := json.Marshal(MovePayload{GameID: gameID, Board: move.Board, Square: move.Square})
	if err != nil {
		return fmt.Errorf("failed to marshal move: %w", err)
	}

	if err = wsjson.Write(ctx, conn, Message{Action: actionGameMove, Payload: payload}); err != nil {
		return fmt.Errorf("failed to write move: %w", err)
	}

	return nil
}

func (that *Client) endpoint() (string, error) {
	endpoint, err := url.Parse(that.url)
	if err != nil {
		return "", fmt.Errorf("invalid server url %q: %w", that.url, err)
	}

	query := endpoint.Query()
	query.Set("piece", that.piece.String())
	endpoint.RawQuery = query.Encode()

	return endpoint.String(), nil
}

func (that *Client) setConn(conn *websocket.Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.conn = conn
}

// handleMessages - processes messages from the server.
func (that *Client) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		if err := that.dispatch(ctx, message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Client) dispatch(ctx context.Context, message Message) error {
	handle, ok := that.handlers[message.Action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, message.Action)
	}

	return handle(ctx, message.Payload)
}
