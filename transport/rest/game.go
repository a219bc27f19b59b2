package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/gridcapture-backend/internal/repository"
	"github.com/rocketscienceinc/gridcapture-backend/transport/view"
)

// gameHandler returns the snapshot of one game.
func (that *Server) gameHandler(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	log := that.logger.With("method", "gameHandler", "gameID", gameID)

	game, err := that.gameUseCase.GetGameByID(r.Context(), gameID)
	if errors.Is(err, repository.ErrGameNotFound) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to get game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(view.NewGame(game)); err != nil {
		log.Error("failed to write response", "error", err)
	}
}
