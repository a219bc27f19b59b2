package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gridcapture-backend/internal/entity"
	"github.com/rocketscienceinc/gridcapture-backend/internal/repository"
	"github.com/rocketscienceinc/gridcapture-backend/transport/view"
)

type mockGameUseCase struct {
	mock.Mock
}

func (that *mockGameUseCase) GetGameByID(ctx context.Context, gameID string) (*entity.Game, error) {
	args := that.Called(ctx, gameID)
	return args.Get(0).(*entity.Game), args.Error(1)
}

func newTestServer(useCase *mockGameUseCase) http.Handler {
	return New(slog.New(slog.NewJSONHandler(io.Discard, nil)), useCase).Handler()
}

func TestServer_Ping(t *testing.T) {
	handler := newTestServer(&mockGameUseCase{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestServer_GetGame(t *testing.T) {
	t.Run("Returns the game snapshot", func(t *testing.T) {
		// Given: a stored game where the human owns (4, 2)
		useCase := &mockGameUseCase{}
		game := &entity.Game{ID: "g1", Round: 1, Status: entity.StatusOngoing, Turn: entity.Opponent}
		game.Board[2][4] = entity.CellHuman
		useCase.On("GetGameByID", mock.Anything, "g1").Return(game, nil).Once()

		// When: requesting it
		rec := httptest.NewRecorder()
		newTestServer(useCase).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games/g1", nil))

		// Then: the snapshot is returned as JSON
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var snapshot view.Game
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
		assert.Equal(t, "g1", snapshot.ID)
		assert.Equal(t, entity.Human, snapshot.Grid[2][4].Owner)
		assert.Equal(t, 1, snapshot.Scores.Human)
	})

	t.Run("Unknown game is 404", func(t *testing.T) {
		useCase := &mockGameUseCase{}
		notFound := fmt.Errorf("failed to get game: %w", repository.ErrGameNotFound)
		useCase.On("GetGameByID", mock.Anything, "missing").Return((*entity.Game)(nil), notFound).Once()

		rec := httptest.NewRecorder()
		newTestServer(useCase).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Storage failure is 500", func(t *testing.T) {
		useCase := &mockGameUseCase{}
		useCase.On("GetGameByID", mock.Anything, "g1").Return((*entity.Game)(nil), errors.New("redis down")).Once()

		rec := httptest.NewRecorder()
		newTestServer(useCase).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games/g1", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("Only GET is allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestServer(&mockGameUseCase{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/games/g1", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
