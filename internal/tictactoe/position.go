package tictactoe

import (
	"errors"
	"fmt"
	"strings"
)

const boardSize = 9

var (
	ErrOutOfRange          = errors.New("position out of range")
	ErrInvalidMove         = errors.New("invalid move")
	ErrGameAlreadyComplete = errors.New("game is already complete")
	ErrUnknownMarker       = errors.New("unknown marker")
)

// Position identifies one of the nine cells, numbered left to right and top to bottom.
type Position uint8

// NewPosition - validates n and converts it to a Position.
func NewPosition(n int) (Position, error) {
	if n < 0 || n >= boardSize {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}

	return Position(n), nil
}

func (that Position) Valid() bool {
	return that < boardSize
}

func (that Position) Row() int {
	return int(that) / 3
}

func (that Position) Column() int {
	return int(that) % 3
}

// Marker is the token a player places on the board.
type Marker string

const (
	X Marker = "X"
	O Marker = "O"
)

// ParseMarker - accepts "X" or "O" in either case.
func ParseMarker(raw string) (Marker, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(X):
		return X, nil
	case string(O):
		return O, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMarker, raw)
	}
}

func (that Marker) Other() Marker {
	if that == X {
		return O
	}
	return X
}

func (that Marker) Valid() bool {
	return that == X || that == O
}

func (that Marker) String() string {
	return string(that)
}
