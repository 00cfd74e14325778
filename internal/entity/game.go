package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

// GameRecord is a stored game. Version starts at 1 and grows with every
// successful update; it is the token for compare-and-swap writes.
type GameRecord struct {
	ID        string
	Version   int64
	CreatedAt time.Time
	Game      tictactoe.Game
}

// Assignment maps each marker of a game to the player holding it.
type Assignment struct {
	GameID  string                      `json:"game_id"`
	Players map[tictactoe.Marker]string `json:"players"`
}

func NewAssignment(gameID string) *Assignment {
	return &Assignment{
		GameID:  gameID,
		Players: make(map[tictactoe.Marker]string, 2),
	}
}

func (that *Assignment) MarkerOf(playerID string) (tictactoe.Marker, bool) {
	for marker, id := range that.Players {
		if id == playerID {
			return marker, true
		}
	}
	return "", false
}

func (that *Assignment) PlayerOf(marker tictactoe.Marker) (string, bool) {
	id, ok := that.Players[marker]
	return id, ok
}

func (that *Assignment) IsFull() bool {
	_, hasX := that.Players[tictactoe.X]
	_, hasO := that.Players[tictactoe.O]
	return hasX && hasO
}

// Assign - gives marker to playerID. Assigning a player the marker it already
// holds is a no-op.
func (that *Assignment) Assign(playerID string, marker tictactoe.Marker) error {
	if holder, ok := that.Players[marker]; ok {
		if holder == playerID {
			return nil
		}
		return fmt.Errorf("%w: %s", apperror.ErrMarkerTaken, marker)
	}

	if current, ok := that.MarkerOf(playerID); ok {
		return fmt.Errorf("%w: %s", apperror.ErrAlreadyAssigned, current)
	}

	that.Players[marker] = playerID

	return nil
}
