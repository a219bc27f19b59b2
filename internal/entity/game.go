package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gridcapture-backend/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	OutcomeHumanWins    = "human_wins"
	OutcomeOpponentWins = "opponent_wins"
	OutcomeDraw         = "draw"
)

// SpecialCellCount is the number of marker placements drawn on every reset.
const SpecialCellCount = 5

var ErrUnknownGameStatus = errors.New("unknown game status")

// Randomizer is the source of randomness for marker placement and the opponent.
// *rand.Rand from math/rand/v2 satisfies it.
type Randomizer interface {
	IntN(n int) int
}

type Scores struct {
	Human    int `json:"human"`
	Opponent int `json:"opponent"`
}

// MoveResult describes one claimed cell and the effect it triggered.
// Affected lists the cells the effect changed.
type MoveResult struct {
	Mark     Mark       `json:"mark"`
	X        int        `json:"x"`
	Y        int        `json:"y"`
	Effect   EffectKind `json:"effect"`
	Affected []Position `json:"affected,omitempty"`
}

type Game struct {
	ID       string      `json:"id"`
	PlayerID string      `json:"player_id,omitempty"`
	Round    int         `json:"round"`
	Board    Board       `json:"board"`
	Markers  Markers     `json:"markers"`
	Turn     Mark        `json:"turn"`
	Status   string      `json:"status"`
	Outcome  string      `json:"outcome,omitempty"`
	Winner   string      `json:"winner,omitempty"`
	LastMove *MoveResult `json:"last_move,omitempty"`
}

// NewGame creates a game and starts its first round.
func NewGame(id string, rnd Randomizer) *Game {
	game := &Game{
		ID:     id,
		Status: StatusWaiting,
	}
	game.Reset(rnd)

	return game
}

// Reset clears the board and the markers, scatters new markers and gives the first turn to the human.
func (that *Game) Reset(rnd Randomizer) {
	that.Board = Board{}
	that.Markers.Clear()
	that.placeMarkers(rnd)

	that.Round++
	that.Turn = Human
	that.Status = StatusOngoing
	that.Outcome = ""
	that.Winner = ""
	that.LastMove = nil
}

// placeMarkers draws positions with replacement; a later draw overwrites an earlier one.
func (that *Game) placeMarkers(rnd Randomizer) {
	for range SpecialCellCount {
		x := rnd.IntN(GridSize)
		y := rnd.IntN(GridSize)
		that.Markers[y][x] = SpecialCellKinds[rnd.IntN(len(SpecialCellKinds))]
	}
}

func (that *Game) MakeTurn(mark Mark, x, y int) (*MoveResult, error) {
	if err := that.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	if !InBounds(x, y) {
		return nil, fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidCell, x, y)
	}

	if that.Turn != mark {
		return nil, apperror.ErrNotYourTurn
	}

	if that.Board[y][x] != CellEmpty {
		return nil, apperror.ErrCellOccupied
	}

	that.Board[y][x] = CellOf(mark)

	result := &MoveResult{Mark: mark, X: x, Y: y, Effect: that.Markers[y][x]}
	if result.Effect != EffectNone {
		// markers are single-use
		that.Markers[y][x] = EffectNone
		result.Affected = that.applyEffect(result.Effect, mark, x, y)
	}
	that.LastMove = result

	that.UpdateGameState()
	if that.IsOngoing() {
		that.Turn = mark.Other()
	}

	return result, nil
}

func (that *Game) applyEffect(kind EffectKind, mark Mark, x, y int) []Position {
	switch kind {
	case EffectReverseAdjacent:
		return that.reverseAdjacent(x, y)
	case EffectBlockArea:
		return that.blockArea(x, y)
	case EffectRevealArea:
		return that.revealArea(mark, x, y)
	default:
		// EffectDoubleRegion has no board effect yet.
		return nil
	}
}

func (that *Game) reverseAdjacent(x, y int) []Position {
	var changed []Position
	for _, pos := range Neighbors(x, y) {
		if that.Board[pos.Y][pos.X] == CellEmpty {
			continue
		}

		that.Board[pos.Y][pos.X] = that.Board[pos.Y][pos.X].Flip()
		changed = append(changed, pos)
	}

	return changed
}

func (that *Game) blockArea(x, y int) []Position {
	var changed []Position
	for _, pos := range Area(x, y) {
		if that.Board[pos.Y][pos.X] != CellEmpty {
			changed = append(changed, pos)
		}

		that.Board[pos.Y][pos.X] = CellEmpty
	}

	return changed
}

func (that *Game) revealArea(mark Mark, x, y int) []Position {
	var changed []Position
	for _, pos := range Area(x, y) {
		if that.Board[pos.Y][pos.X] != CellEmpty {
			continue
		}

		that.Board[pos.Y][pos.X] = CellOf(mark)
		changed = append(changed, pos)
	}

	return changed
}

// IsOver reports whether no empty cell is left.
func (that *Game) IsOver() bool {
	return that.Board.Count(CellEmpty) == 0
}

func (that *Game) CountOwned(cell Cell) int {
	return that.Board.Count(cell)
}

func (that *Game) Scores() Scores {
	return Scores{
		Human:    that.CountOwned(CellHuman),
		Opponent: that.CountOwned(CellOpponent),
	}
}

func (that *Game) DetermineOutcome() string {
	scores := that.Scores()

	switch {
	case scores.Human > scores.Opponent:
		return OutcomeHumanWins
	case scores.Opponent > scores.Human:
		return OutcomeOpponentWins
	default:
		return OutcomeDraw
	}
}

// UpdateGameState finishes the game once the board is full.
func (that *Game) UpdateGameState() {
	if !that.IsOver() {
		that.Status = StatusOngoing
		return
	}

	that.Status = StatusFinished
	that.Outcome = that.DetermineOutcome()
	that.Winner = WinnerText(that.Outcome)
}

func WinnerText(outcome string) string {
	switch outcome {
	case OutcomeHumanWins:
		return Human.Label() + " Wins!"
	case OutcomeOpponentWins:
		return Opponent.Label() + " Wins!"
	case OutcomeDraw:
		return "It's a Draw!"
	default:
		return ""
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
