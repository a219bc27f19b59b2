package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gridcapture-backend/internal/apperror"
	"github.com/rocketscienceinc/gridcapture-backend/internal/entity"
	"github.com/rocketscienceinc/gridcapture-backend/transport/view"
)

// rejectedMoveErrors are replied to the player as is; the game stays untouched.
var rejectedMoveErrors = []error{
	apperror.ErrInvalidCell,
	apperror.ErrCellOccupied,
	apperror.ErrNotYourTurn,
	apperror.ErrGameFinished,
	apperror.ErrGameIsNotStarted,
	apperror.ErrNoActiveGames,
}

var errNotConnected = errors.New("player is not connected")

func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := parsePayload(msg)
	if err != nil {
		return that.sendReply(conn, msg.Action, Payload{Error: "invalid payload"}, err)
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return that.sendReply(conn, msg.Action, Payload{Error: "failed to create a new player"}, nil)
	}

	that.hub.register(player.ID, conn)
	log = log.With("playerID", player.ID)

	payloadResp := Payload{Player: player}

	if player.GameID != "" {
		game, err := that.gameUseCase.GetOrCreateGame(ctx, player.ID)
		if err != nil {
			log.Error("failed to get game", "gameID", player.GameID, "error", err)
			return that.sendReply(conn, msg.Action, Payload{Player: player, Error: "failed to get the game"}, nil)
		}

		payloadResp.Game = view.NewGame(game)
	}

	log.Info("successfully connected player")

	return that.sendReply(conn, msg.Action, payloadResp, nil)
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *connection) error {
	return that.handleGameAction(ctx, msg, conn, that.gameUseCase.GetOrCreateGame)
}

func (that *Server) handleGameReset(ctx context.Context, msg *Message, conn *connection) error {
	return that.handleGameAction(ctx, msg, conn, that.gameUseCase.ResetGame)
}

func (that *Server) handleGameRestart(ctx context.Context, msg *Message, conn *connection) error {
	return that.handleGameAction(ctx, msg, conn, that.gameUseCase.RestartGame)
}

func (that *Server) handleGameAction(
	ctx context.Context,
	msg *Message,
	conn *connection,
	action func(ctx context.Context, playerID string) (*entity.Game, error),
) error {
	playerID := conn.PlayerID()
	if playerID == "" {
		return that.sendReply(conn, msg.Action, Payload{Error: errNotConnected.Error()}, nil)
	}

	game, err := action(ctx, playerID)
	if errors.Is(err, apperror.ErrNoActiveGames) {
		return that.sendReply(conn, msg.Action, Payload{Error: apperror.ErrNoActiveGames.Error()}, nil)
	}

	if err != nil {
		that.logger.Error("failed to handle game action", "action", msg.Action, "playerID", playerID, "error", err)
		return that.sendReply(conn, msg.Action, Payload{Error: "failed to load the game"}, nil)
	}

	return that.sendReply(conn, msg.Action, Payload{Game: view.NewGame(game)}, nil)
}

// handleGameTurn applies a human click. The opponent's answer arrives later as game:state.
func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleGameTurn")

	playerID := conn.PlayerID()
	if playerID == "" {
		return that.sendReply(conn, msg.Action, Payload{Error: errNotConnected.Error()}, nil)
	}

	payloadReq, err := parsePayload(msg)
	if err != nil {
		return that.sendReply(conn, msg.Action, Payload{Error: "invalid payload"}, err)
	}

	var x, y int
	switch {
	case payloadReq.Cell != nil:
		x, y = payloadReq.Cell.X, payloadReq.Cell.Y
	case payloadReq.Point != nil:
		x, y = cellFromPoint(*payloadReq.Point, that.cellSize)
	default:
		return that.sendReply(conn, msg.Action, Payload{Error: "cell is required"}, nil)
	}

	log = log.With("playerID", playerID, "x", x, "y", y)

	game, err := that.gameUseCase.MakeTurn(ctx, playerID, x, y)
	if err != nil {
		if reason := rejectionReason(err); reason != nil {
			log.Debug("move rejected", "reason", err)

			payloadResp := Payload{Error: reason.Error()}
			if game != nil {
				payloadResp.Game = view.NewGame(game)
			}

			return that.sendReply(conn, msg.Action, payloadResp, nil)
		}

		log.Error("failed to make turn", "error", err)
		return that.sendReply(conn, msg.Action, Payload{Error: "failed to make turn"}, nil)
	}

	log.Info("player made a turn", "gameID", game.ID)

	return that.sendReply(conn, msg.Action, Payload{Game: view.NewGame(game)}, nil)
}

func (that *Server) handleGameLeave(ctx context.Context, msg *Message, conn *connection) error {
	playerID := conn.PlayerID()
	if playerID == "" {
		return that.sendReply(conn, msg.Action, Payload{Error: errNotConnected.Error()}, nil)
	}

	err := that.gameUseCase.LeaveGame(ctx, playerID)
	if errors.Is(err, apperror.ErrNoActiveGames) {
		return that.sendReply(conn, msg.Action, Payload{Error: apperror.ErrNoActiveGames.Error()}, nil)
	}

	if err != nil {
		that.logger.Error("failed to leave game", "playerID", playerID, "error", err)
		return that.sendReply(conn, msg.Action, Payload{Error: "failed to leave the game"}, nil)
	}

	that.logger.Info("player left game", "playerID", playerID)

	return that.sendReply(conn, msg.Action, Payload{Player: &entity.Player{ID: playerID}}, nil)
}

// sendReply queues the reply and returns cause, or the send error when there is no cause.
func (that *Server) sendReply(conn *connection, action string, payload Payload, cause error) error {
	if err := conn.sendMessage(action, payload); err != nil && cause == nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return cause
}

func parsePayload(msg *Message) (Payload, error) {
	var payload Payload
	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}

// rejectionReason returns the sentinel that explains why a move was refused, or nil.
func rejectionReason(err error) error {
	for _, target := range rejectedMoveErrors {
		if errors.Is(err, target) {
			return target
		}
	}

	return nil
}
