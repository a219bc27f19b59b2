package view

import (
	"testing"

	"github.com/rocketscienceinc/gridcapture-backend/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestNewGame(t *testing.T) {
	t.Run("Paints owners and markers with the palette", func(t *testing.T) {
		// Given: a game with one cell per owner and two markers, one under a claimed cell
		game := &entity.Game{ID: "g1", Round: 3, Turn: entity.Human, Status: entity.StatusOngoing}
		game.Board[0][0] = entity.CellHuman
		game.Board[0][1] = entity.CellOpponent
		game.Board[4][4] = entity.CellHuman
		game.Markers[2][3] = entity.EffectBlockArea
		game.Markers[4][4] = entity.EffectRevealArea

		// When: building the snapshot
		snapshot := NewGame(game)

		// Then: owned cells use player colors and only the visible marker is shown
		assert.Equal(t, Cell{Owner: entity.Human, Color: "#FF0000"}, snapshot.Grid[0][0])
		assert.Equal(t, Cell{Owner: entity.Opponent, Color: "#0000FF"}, snapshot.Grid[0][1])
		assert.Equal(t, Cell{Marker: "block", Color: "#FF00FF"}, snapshot.Grid[2][3])
		assert.Equal(t, Cell{Owner: entity.Human, Color: "#FF0000"}, snapshot.Grid[4][4])
		assert.Equal(t, Cell{}, snapshot.Grid[9][9])

		assert.Equal(t, "g1", snapshot.ID)
		assert.Equal(t, 3, snapshot.Round)
		assert.False(t, snapshot.Over)
	})

	t.Run("Carries scores, labels and the winner", func(t *testing.T) {
		// Given: a finished game won by the opponent
		game := &entity.Game{ID: "g2", Round: 1}
		game.Board.Fill(entity.CellOpponent)
		game.Board[0][0] = entity.CellHuman
		game.UpdateGameState()

		// When: building the snapshot
		snapshot := NewGame(game)

		// Then: the end-of-game fields are filled
		assert.Equal(t, entity.Scores{Human: 1, Opponent: 99}, snapshot.Scores)
		assert.Equal(t, "Player 1 (Red): 1", snapshot.ScoreLabels.Human)
		assert.Equal(t, "AI (Blue): 99", snapshot.ScoreLabels.Opponent)
		assert.True(t, snapshot.Over)
		assert.Equal(t, "AI (Blue) Wins!", snapshot.Winner)
	})
}
