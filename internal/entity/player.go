package entity

import (
	"time"

	"github.com/google/uuid"
)

type Player struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	LastActive  time.Time `json:"last_active"`
	GamesPlayed int       `json:"games_played"`
	GamesWon    int       `json:"games_won"`
}

// NewPlayer - creates an anonymous player. An empty name gets a generated one.
func NewPlayer(name string) *Player {
	id := uuid.NewString()
	if name == "" {
		name = "Player_" + id[:8]
	}

	now := time.Now().UTC()

	return &Player{
		ID:         id,
		Name:       name,
		CreatedAt:  now,
		LastActive: now,
	}
}

func (that *Player) RecordResult(won bool) {
	that.GamesPlayed++
	if won {
		that.GamesWon++
	}
}

// IsRegistered - the player has an account and can log in from other devices.
func (that *Player) IsRegistered() bool {
	return that.Email != ""
}
