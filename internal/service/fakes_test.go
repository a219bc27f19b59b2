package service

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/gridcapture-backend/internal/entity"
	"github.com/rocketscienceinc/gridcapture-backend/internal/repository"
	"github.com/stretchr/testify/mock"
)

// zeroRand always picks the first candidate.
type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

type memGameRepo struct {
	mu    sync.Mutex
	games map[string]entity.Game
}

func newMemGameRepo() *memGameRepo {
	return &memGameRepo{games: make(map[string]entity.Game)}
}

func (that *memGameRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = *game
	return nil
}

func (that *memGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[id]
	if !ok {
		return &entity.Game{}, repository.ErrGameNotFound
	}
	return &game, nil
}

func (that *memGameRepo) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return repository.ErrGameNotFound
	}
	delete(that.games, id)
	return nil
}

type memPlayerRepo struct {
	mu      sync.Mutex
	players map[string]entity.Player
}

func newMemPlayerRepo() *memPlayerRepo {
	return &memPlayerRepo{players: make(map[string]entity.Player)}
}

func (that *memPlayerRepo) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.players[player.ID] = *player
	return nil
}

func (that *memPlayerRepo) GetByID(_ context.Context, id string) (*entity.Player, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, ok := that.players[id]
	if !ok {
		return &entity.Player{}, repository.ErrPlayerNotFound
	}
	return &player, nil
}

type mockNotifier struct {
	mock.Mock
}

func (that *mockNotifier) NotifyGame(ctx context.Context, playerID string, game *entity.Game) {
	that.Called(ctx, playerID, game)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
