package apperror

import "errors"

var (
	ErrGameNotFound        = errors.New("game not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrConcurrencyConflict = errors.New("game was modified by another operation")
	ErrMarkerTaken         = errors.New("marker is already taken by another player")
	ErrAlreadyAssigned     = errors.New("player already plays the other marker")
	ErrGameFull            = errors.New("game already has two players")
	ErrNotInGame           = errors.New("player is not registered for this game")
	ErrInvalidSession      = errors.New("invalid session")

	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrAlreadyRegistered  = errors.New("player is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("password does not meet the requirements")
)
