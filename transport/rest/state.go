package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/entity"
)

type snapshotter interface {
	Snapshot() (entity.GameState, bool)
}

type StateHandler interface {
	StateHandler(w http.ResponseWriter, _ *http.Request)
}

type stateHandler struct {
	logger  *slog.Logger
	session snapshotter
}

func NewStateHandler(logger *slog.Logger, session snapshotter) StateHandler {
	return &stateHandler{
		logger:  logger,
		session: session,
	}
}

// StateHandler writes the current game as JSON.
func (that *stateHandler) StateHandler(w http.ResponseWriter, _ *http.Request) {
	state, ok := that.session.Snapshot()
	if !ok {
		http.Error(w, "no game in progress", http.StatusNotFound)
		return
	}

	body, err := json.Marshal(state)
	if err != nil {
		that.logger.Error("failed to encode state", "method", "StateHandler", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(body); err != nil {
		that.logger.Warn("failed to write state", "method", "StateHandler", "error", err)
	}
}
