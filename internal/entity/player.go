package entity

// Mark identifies one of the two sides of a game.
type Mark string

const (
	Human    Mark = "human"
	Opponent Mark = "opponent"
)

// Other returns the opposing side.
func (that Mark) Other() Mark {
	if that == Human {
		return Opponent
	}
	return Human
}

func (that Mark) IsValid() bool {
	return that == Human || that == Opponent
}

// Label is the name shown next to the side's score.
func (that Mark) Label() string {
	if that == Human {
		return "Player 1 (Red)"
	}
	return "AI (Blue)"
}

// Player is a browser session. A session owns at most one game at a time.
type Player struct {
	ID     string `json:"id"`
	GameID string `json:"game_id,omitempty"`
}
