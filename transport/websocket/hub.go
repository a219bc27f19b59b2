package websocket

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/gridcapture-backend/internal/entity"
	"github.com/rocketscienceinc/gridcapture-backend/transport/view"
)

// Hub tracks the live connection of every player and pushes game states to it.
type Hub struct {
	logger *slog.Logger

	connectionsMutex sync.RWMutex
	connections      map[string]*connection
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:      logger.With("component", "hub"),
		connections: make(map[string]*connection),
	}
}

// register binds conn to playerID. A newer tab of the same player takes over the pushes.
func (that *Hub) register(playerID string, conn *connection) {
	conn.setPlayerID(playerID)

	that.connectionsMutex.Lock()
	that.connections[playerID] = conn
	that.connectionsMutex.Unlock()
}

func (that *Hub) unregister(conn *connection) {
	playerID := conn.PlayerID()
	if playerID == "" {
		return
	}

	that.connectionsMutex.Lock()
	if that.connections[playerID] == conn {
		delete(that.connections, playerID)
	}
	that.connectionsMutex.Unlock()

	that.logger.Info("player disconnected", "playerID", playerID)
}

func (that *Hub) connection(playerID string) (*connection, bool) {
	that.connectionsMutex.RLock()
	defer that.connectionsMutex.RUnlock()

	conn, ok := that.connections[playerID]

	return conn, ok
}

// NotifyGame sends the game state to the player's connection, if there is one.
func (that *Hub) NotifyGame(_ context.Context, playerID string, game *entity.Game) {
	log := that.logger.With("method", "NotifyGame", "playerID", playerID, "gameID", game.ID)

	conn, ok := that.connection(playerID)
	if !ok {
		log.Debug("player is offline, state kept for reconnect")
		return
	}

	if err := conn.sendMessage(actionGameState, Payload{Game: view.NewGame(game)}); err != nil {
		log.Warn("failed to push game state", "error", err)
	}
}

// Close drops every connection.
func (that *Hub) Close() {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	for playerID, conn := range that.connections {
		conn.close()
		delete(that.connections, playerID)
	}
}
