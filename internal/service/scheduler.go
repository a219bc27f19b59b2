package service

import (
	"sync"
	"time"
)

// OpponentScheduler holds at most one pending opponent move per game.
type OpponentScheduler struct {
	mu     sync.Mutex
	turns  map[string]*scheduledTurn
	closed bool
}

type scheduledTurn struct {
	round int
	timer *time.Timer
}

func NewOpponentScheduler() *OpponentScheduler {
	return &OpponentScheduler{
		turns: make(map[string]*scheduledTurn),
	}
}

// Schedule runs fn once after delay, replacing any move still pending for gameID.
func (that *OpponentScheduler) Schedule(gameID string, round int, delay time.Duration, fn func()) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return
	}

	if pending, ok := that.turns[gameID]; ok {
		pending.timer.Stop()
	}

	turn := &scheduledTurn{round: round}
	turn.timer = time.AfterFunc(delay, func() {
		that.mu.Lock()
		current, ok := that.turns[gameID]
		if !ok || current != turn {
			that.mu.Unlock()
			return
		}
		delete(that.turns, gameID)
		that.mu.Unlock()

		fn()
	})
	that.turns[gameID] = turn
}

// Cancel stops the pending move of gameID and reports whether there was one.
func (that *OpponentScheduler) Cancel(gameID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	turn, ok := that.turns[gameID]
	if !ok {
		return false
	}

	turn.timer.Stop()
	delete(that.turns, gameID)

	return true
}

// Pending returns the round of the move waiting for gameID.
func (that *OpponentScheduler) Pending(gameID string) (int, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	turn, ok := that.turns[gameID]
	if !ok {
		return 0, false
	}

	return turn.round, true
}

// Stop cancels every pending move and rejects new ones.
func (that *OpponentScheduler) Stop() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for gameID, turn := range that.turns {
		turn.timer.Stop()
		delete(that.turns, gameID)
	}
	that.closed = true
}
