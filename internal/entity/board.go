package entity

import "fmt"

// GridSize is the width and height of every board.
const GridSize = 10

// Cell holds the ownership state of one board position.
type Cell int

const (
	CellEmpty Cell = iota
	CellHuman
	CellOpponent
)

// CellOf returns the cell value owned by mark.
func CellOf(mark Mark) Cell {
	if mark == Human {
		return CellHuman
	}
	return CellOpponent
}

// Owner reports who owns the cell. The second value is false for empty cells.
func (that Cell) Owner() (Mark, bool) {
	switch that {
	case CellHuman:
		return Human, true
	case CellOpponent:
		return Opponent, true
	default:
		return "", false
	}
}

// Flip swaps the owner of an owned cell. Empty cells are returned unchanged.
func (that Cell) Flip() Cell {
	switch that {
	case CellHuman:
		return CellOpponent
	case CellOpponent:
		return CellHuman
	default:
		return that
	}
}

func (that Cell) String() string {
	if owner, ok := that.Owner(); ok {
		return string(owner)
	}
	return "empty"
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (that Position) String() string {
	return fmt.Sprintf("(%d, %d)", that.X, that.Y)
}

func InBounds(x, y int) bool {
	return x >= 0 && x < GridSize && y >= 0 && y < GridSize
}

// Neighbors returns the in-bounds orthogonal neighbors of (x, y).
func Neighbors(x, y int) []Position {
	candidates := [4]Position{
		{X: x - 1, Y: y},
		{X: x + 1, Y: y},
		{X: x, Y: y - 1},
		{X: x, Y: y + 1},
	}

	neighbors := make([]Position, 0, len(candidates))
	for _, pos := range candidates {
		if InBounds(pos.X, pos.Y) {
			neighbors = append(neighbors, pos)
		}
	}

	return neighbors
}

// Area returns the in-bounds cells of the 3x3 square centered on (x, y), center included.
func Area(x, y int) []Position {
	area := make([]Position, 0, 9)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if InBounds(x+dx, y+dy) {
				area = append(area, Position{X: x + dx, Y: y + dy})
			}
		}
	}

	return area
}

// Board is indexed as Board[y][x].
type Board [GridSize][GridSize]Cell

func (that *Board) Count(cell Cell) int {
	count := 0
	for y := range that {
		for x := range that[y] {
			if that[y][x] == cell {
				count++
			}
		}
	}

	return count
}

// EmptyCells lists empty positions in row-major order.
func (that *Board) EmptyCells() []Position {
	cells := make([]Position, 0, GridSize*GridSize)
	for y := range that {
		for x := range that[y] {
			if that[y][x] == CellEmpty {
				cells = append(cells, Position{X: x, Y: y})
			}
		}
	}

	return cells
}

func (that *Board) Fill(cell Cell) {
	for y := range that {
		for x := range that[y] {
			that[y][x] = cell
		}
	}
}
