package view

import (
	"fmt"

	"github.com/rocketscienceinc/gridcapture-backend/internal/entity"
)

var ownerColors = map[entity.Mark]string{
	entity.Human:    "#FF0000",
	entity.Opponent: "#0000FF",
}

var markerColors = map[entity.EffectKind]string{
	entity.EffectDoubleRegion:    "#00FF00",
	entity.EffectReverseAdjacent: "#FFFF00",
	entity.EffectBlockArea:       "#FF00FF",
	entity.EffectRevealArea:      "#00FFFF",
}

// Cell is one rendered grid square. Empty cells without a marker carry no color.
type Cell struct {
	Owner  entity.Mark `json:"owner,omitempty"`
	Marker string      `json:"marker,omitempty"`
	Color  string      `json:"color,omitempty"`
}

type ScoreLabels struct {
	Human    string `json:"human"`
	Opponent string `json:"opponent"`
}

// Game is the render-ready snapshot of a game sent to the browser.
type Game struct {
	ID          string                                  `json:"id"`
	Round       int                                     `json:"round"`
	Grid        [entity.GridSize][entity.GridSize]Cell `json:"grid"`
	Scores      entity.Scores                           `json:"scores"`
	ScoreLabels ScoreLabels                             `json:"score_labels"`
	Turn        entity.Mark                             `json:"turn"`
	Status      string                                  `json:"status"`
	Over        bool                                    `json:"over"`
	Winner      string                                  `json:"winner,omitempty"`
	LastMove    *entity.MoveResult                      `json:"last_move,omitempty"`
}

func NewGame(game *entity.Game) *Game {
	scores := game.Scores()

	snapshot := &Game{
		ID:     game.ID,
		Round:  game.Round,
		Scores: scores,
		ScoreLabels: ScoreLabels{
			Human:    fmt.Sprintf("%s: %d", entity.Human.Label(), scores.Human),
			Opponent: fmt.Sprintf("%s: %d", entity.Opponent.Label(), scores.Opponent),
		},
		Turn:     game.Turn,
		Status:   game.Status,
		Over:     game.IsFinished(),
		Winner:   game.Winner,
		LastMove: game.LastMove,
	}

	for y := range game.Board {
		for x := range game.Board[y] {
			snapshot.Grid[y][x] = newCell(game.Board[y][x], game.Markers[y][x])
		}
	}

	return snapshot
}

// newCell paints an owned cell in its owner's color; markers show only on empty cells.
func newCell(cell entity.Cell, marker entity.EffectKind) Cell {
	if owner, ok := cell.Owner(); ok {
		return Cell{Owner: owner, Color: ownerColors[owner]}
	}

	if marker == entity.EffectNone {
		return Cell{}
	}

	return Cell{Marker: marker.String(), Color: markerColors[marker]}
}
