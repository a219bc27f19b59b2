package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/gridcapture-backend/internal/entity"
	"github.com/rocketscienceinc/gridcapture-backend/transport/view"
)

const (
	actionConnect     = "connect"
	actionGameNew     = "game:new"
	actionGameTurn    = "game:turn"
	actionGameReset   = "game:reset"
	actionGameRestart = "game:restart"
	actionGameLeave   = "game:leave"
	actionGameState   = "game:state"
	actionError       = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Coordinates is a grid cell for "cell" or a canvas pixel for "point".
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Payload struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *view.Game     `json:"game,omitempty"`
	Cell   *Coordinates   `json:"cell,omitempty"`
	Point  *Coordinates   `json:"point,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func newMessage(action string, payload Payload) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Message{Action: action, Payload: raw})
}

// cellFromPoint maps a canvas pixel to the grid cell under it.
// Negative pixels land outside the grid.
func cellFromPoint(point Coordinates, cellSize int) (int, int) {
	return pixelToCell(point.X, cellSize), pixelToCell(point.Y, cellSize)
}

func pixelToCell(pixel, cellSize int) int {
	if pixel < 0 {
		return -1
	}

	return pixel / cellSize
}
