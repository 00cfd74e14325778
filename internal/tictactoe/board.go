package tictactoe

import (
	"fmt"
	"strings"
)

// Board holds the nine squares. It is a value: every change returns a new Board.
type Board struct {
	squares [boardSize]Square
}

var emptyBoard = func() Board {
	var board Board
	for i := range board.squares {
		board.squares[i] = Available(X)
	}
	return board
}()

// EmptyBoard - the starting board, every square available to X.
func EmptyBoard() Board {
	return emptyBoard
}

// At - returns the square at position. Positions outside the board read as Unavailable.
func (that Board) At(position Position) Square {
	if !position.Valid() {
		return Unavailable()
	}
	return that.squares[position]
}

// Squares - the nine squares in position order.
func (that Board) Squares() []Square {
	squares := that.squares
	return squares[:]
}

// IsValidMove reports whether the target square is open and expects move's marker.
func (that Board) IsValidMove(move Move) bool {
	square := that.At(move.position)
	return square.IsAvailable() && square.marker == move.marker
}

// WithMove - places move on a copy of the board. Every other open square is handed
// to the opposite marker, or closed when willEndGame is set.
func (that Board) WithMove(move Move, willEndGame bool) (Board, error) {
	if err := that.validateMove(move); err != nil {
		return Board{}, err
	}

	next := that
	next.squares[move.position] = Taken(move.marker)

	for i, square := range next.squares {
		if Position(i) == move.position || !square.IsAvailable() {
			continue
		}

		if willEndGame {
			next.squares[i] = Unavailable()
		} else {
			next.squares[i] = Available(move.marker.Other())
		}
	}

	return next, nil
}

func (that Board) validateMove(move Move) error {
	square := that.At(move.position)

	switch {
	case !move.position.Valid():
		return fmt.Errorf("%w: %d", ErrOutOfRange, move.position)
	case !square.IsAvailable():
		return fmt.Errorf("%w: square %d is %s", ErrInvalidMove, move.position, square)
	case square.marker != move.marker:
		return fmt.Errorf("%w: square %d expects %s, got %s", ErrInvalidMove, move.position, square.marker, move.marker)
	}

	return nil
}

// BoardFromMoves - replays moves over the empty board, stopping at the first invalid one.
func BoardFromMoves(moves []Move) (Board, error) {
	board := EmptyBoard()

	for i, move := range moves {
		next, err := board.WithMove(move, false)
		if err != nil {
			return Board{}, fmt.Errorf("move %d: %w", i+1, err)
		}
		board = next
	}

	return board, nil
}

// NextMarker - the marker the open squares are waiting for.
func (that Board) NextMarker() (Marker, bool) {
	for _, square := range that.squares {
		if square.IsAvailable() {
			return square.marker, true
		}
	}
	return "", false
}

func (that Board) String() string {
	var sb strings.Builder

	for i, square := range that.squares {
		if i > 0 && i%3 == 0 {
			sb.WriteByte('/')
		}

		if square.IsTaken() {
			sb.WriteString(string(square.marker))
		} else {
			sb.WriteByte('.')
		}
	}

	return sb.String()
}
