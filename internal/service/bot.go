package service

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rocketscienceinc/gridcapture-backend/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	MakeTurn(game *entity.Game) (*entity.MoveResult, error)
}

type botService struct {
	rnd entity.Randomizer
}

func NewBotService(rnd entity.Randomizer) BotService {
	return &botService{rnd: rnd}
}

// MakeTurn claims a uniformly random empty cell for the opponent.
func (that *botService) MakeTurn(game *entity.Game) (*entity.MoveResult, error) {
	availableCells := game.Board.EmptyCells()
	if len(availableCells) == 0 {
		return nil, ErrNoAvailableMoves
	}

	chosen := availableCells[that.rnd.IntN(len(availableCells))]

	result, err := game.MakeTurn(entity.Opponent, chosen.X, chosen.Y)
	if err != nil {
		return nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return result, nil
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n) //nolint: gosec // game randomness, not security
}

// DefaultRandomizer draws from the process-wide math/rand/v2 source, which is safe for concurrent use.
var DefaultRandomizer entity.Randomizer = globalRand{}
