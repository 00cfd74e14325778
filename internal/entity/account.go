package entity

import "time"

// Account - credentials that turn an anonymous player into a named one.
// Email is stored normalized and is unique.
type Account struct {
	Email        string    `json:"email"`
	PlayerID     string    `json:"player_id"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}
