package entity

// EffectKind is the modifier attached to a special cell.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectDoubleRegion
	EffectReverseAdjacent
	EffectBlockArea
	EffectRevealArea
)

// SpecialCellKinds lists the kinds a marker placement draws from.
var SpecialCellKinds = []EffectKind{
	EffectDoubleRegion,
	EffectReverseAdjacent,
	EffectBlockArea,
	EffectRevealArea,
}

func (that EffectKind) String() string {
	switch that {
	case EffectDoubleRegion:
		return "double"
	case EffectReverseAdjacent:
		return "reverse"
	case EffectBlockArea:
		return "block"
	case EffectRevealArea:
		return "reveal"
	default:
		return "none"
	}
}

// Markers is the special cell layer of a board, indexed as Markers[y][x].
type Markers [GridSize][GridSize]EffectKind

// Count returns how many cells still carry a marker.
func (that *Markers) Count() int {
	count := 0
	for y := range that {
		for x := range that[y] {
			if that[y][x] != EffectNone {
				count++
			}
		}
	}

	return count
}

func (that *Markers) Clear() {
	*that = Markers{}
}
