package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/supertictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/entity"
)

type roster interface {
	Roster(ctx context.Context) ([]*entity.Player, error)
}

type PlayersHandler interface {
	PlayersHandler(w http.ResponseWriter, r *http.Request)
}

type playersHandler struct {
	logger  *slog.Logger
	session roster
}

func NewPlayersHandler(logger *slog.Logger, session roster) PlayersHandler {
	return &playersHandler{
		logger:  logger,
		session: session,
	}
}

// PlayersHandler writes the roster of the current game as JSON.
func (that *playersHandler) PlayersHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "PlayersHandler")

	players, err := that.session.Roster(r.Context())
	if errors.Is(err, apperror.ErrGameIsNotStarted) {
		http.Error(w, "no game in progress", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to list players", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if players == nil {
		players = []*entity.Player{}
	}

	body, err := json.Marshal(players)
	if err != nil {
		log.Error("failed to encode players", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(body); err != nil {
		log.Warn("failed to write players", "error", err)
	}
}
