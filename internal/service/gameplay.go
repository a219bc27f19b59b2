package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/gridcapture-backend/internal/apperror"
	"github.com/rocketscienceinc/gridcapture-backend/internal/entity"
	"github.com/rocketscienceinc/gridcapture-backend/internal/repository"
)

const opponentTurnTimeout = 5 * time.Second

// ErrStaleOpponentTurn is returned when a scheduled opponent move no longer applies to the game.
var ErrStaleOpponentTurn = errors.New("opponent turn is stale")

// GameNotifier receives game states produced outside of a player request.
type GameNotifier interface {
	NotifyGame(ctx context.Context, playerID string, game *entity.Game)
}

type GamePlayService interface {
	GetOrCreateGame(ctx context.Context, player *entity.Player) (*entity.Game, error)
	GetGameByID(ctx context.Context, gameID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, playerID string, x, y int) (*entity.Game, error)
	OpponentTurn(ctx context.Context, gameID string, round int) (*entity.Game, error)

	ResetGame(ctx context.Context, playerID string) (*entity.Game, error)
	LeaveGame(ctx context.Context, playerID string) error

	Stop()
}

type gamePlayService struct {
	logger *slog.Logger

	playerService PlayerService
	gameService   GameService
	botService    BotService

	scheduler     *OpponentScheduler
	notifier      GameNotifier
	locks         *keyedMutex
	opponentDelay time.Duration
}

func NewGamePlayService(
	logger *slog.Logger,
	playerService PlayerService,
	gameService GameService,
	botService BotService,
	notifier GameNotifier,
	opponentDelay time.Duration,
) GamePlayService {
	return &gamePlayService{
		logger:        logger.With("component", "gameplay"),
		playerService: playerService,
		gameService:   gameService,
		botService:    botService,
		scheduler:     NewOpponentScheduler(),
		notifier:      notifier,
		locks:         newKeyedMutex(),
		opponentDelay: opponentDelay,
	}
}

func (that *gamePlayService) GetOrCreateGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	if player.GameID == "" {
		return that.createGame(ctx, player)
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if errors.Is(err, repository.ErrGameNotFound) {
		that.logger.Info("game expired, starting a new one", "playerID", player.ID, "gameID", player.GameID)
		return that.createGame(ctx, player)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	// a reply lost with a previous process is scheduled again
	if that.opponentToMove(game) {
		if _, pending := that.scheduler.Pending(game.ID); !pending {
			that.scheduleOpponentTurn(game)
		}
	}

	return game, nil
}

func (that *gamePlayService) GetGameByID(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) createGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	game, err := that.gameService.CreateGame(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	that.logger.Info("game created", "playerID", player.ID, "gameID", game.ID)

	return game, nil
}

// MakeTurn applies a human move and schedules the opponent's reply.
func (that *gamePlayService) MakeTurn(ctx context.Context, playerID string, x, y int) (*entity.Game, error) {
	gameID, err := that.activeGameID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	unlock := that.locks.Lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	result, err := game.MakeTurn(entity.Human, x, y)
	if err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	that.logMove(game, result)

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if that.opponentToMove(game) {
		that.scheduleOpponentTurn(game)
	}

	return game, nil
}

// OpponentTurn plays the scheduled opponent move of round. It is a no-op for a reset or finished game.
func (that *gamePlayService) OpponentTurn(ctx context.Context, gameID string, round int) (*entity.Game, error) {
	unlock := that.locks.Lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if game.Round != round || !that.opponentToMove(game) {
		return game, ErrStaleOpponentTurn
	}

	result, err := that.botService.MakeTurn(game)
	if err != nil {
		return game, fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.logMove(game, result)

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.notifier.NotifyGame(ctx, game.PlayerID, game)

	return game, nil
}

// ResetGame cancels a pending opponent move and starts a new round.
func (that *gamePlayService) ResetGame(ctx context.Context, playerID string) (*entity.Game, error) {
	gameID, err := that.activeGameID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	that.scheduler.Cancel(gameID)

	unlock := that.locks.Lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = that.gameService.ResetGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}

	that.logger.Info("game reset", "playerID", playerID, "gameID", game.ID, "round", game.Round)

	return game, nil
}

// LeaveGame drops the player's game.
func (that *gamePlayService) LeaveGame(ctx context.Context, playerID string) error {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		return apperror.ErrNoActiveGames
	}

	gameID := player.GameID
	that.scheduler.Cancel(gameID)

	unlock := that.locks.Lock(gameID)
	defer unlock()

	if err = that.gameService.DeleteGame(ctx, gameID); err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	player.GameID = ""
	if err = that.playerService.UpdatePlayer(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	that.logger.Info("player left game", "playerID", playerID, "gameID", gameID)

	return nil
}

func (that *gamePlayService) Stop() {
	that.scheduler.Stop()
}

func (that *gamePlayService) activeGameID(ctx context.Context, playerID string) (string, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return "", fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		return "", apperror.ErrNoActiveGames
	}

	return player.GameID, nil
}

func (that *gamePlayService) opponentToMove(game *entity.Game) bool {
	return game.IsOngoing() && game.Turn == entity.Opponent
}

func (that *gamePlayService) scheduleOpponentTurn(game *entity.Game) {
	gameID, round := game.ID, game.Round
	log := that.logger.With("method", "opponentTurn", "gameID", gameID, "round", round)

	that.scheduler.Schedule(gameID, round, that.opponentDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), opponentTurnTimeout)
		defer cancel()

		_, err := that.OpponentTurn(ctx, gameID, round)
		if errors.Is(err, ErrStaleOpponentTurn) {
			log.Debug("skipped stale opponent turn")
			return
		}

		if err != nil {
			log.Error("failed to make opponent turn", "error", err)
		}
	})
}

func (that *gamePlayService) logMove(game *entity.Game, result *entity.MoveResult) {
	log := that.logger.With("gameID", game.ID, "round", game.Round)

	if result.Effect != entity.EffectNone {
		log.Debug("special cell triggered",
			"mark", result.Mark, "x", result.X, "y", result.Y,
			"effect", result.Effect.String(), "affected", len(result.Affected))
	}

	if game.IsFinished() {
		scores := game.Scores()
		log.Info("game finished", "outcome", game.Outcome, "human", scores.Human, "opponent", scores.Opponent)
	}
}
