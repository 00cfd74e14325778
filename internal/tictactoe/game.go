package tictactoe

import (
	"fmt"
	"slices"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWinner     Status = "winner"
	StatusDraw       Status = "draw"
)

var winCombos = [8][3]Position{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// WinningLines - the rows, columns and diagonals that win a game.
func WinningLines() [8][3]Position {
	return winCombos
}

// Game is one of *InProgress, *Winner or *Draw. Values are never modified;
// WithMove returns the next state.
type Game interface {
	Board() Board
	Moves() []Move
	Status() Status
	IsComplete() bool
	Winner() (Marker, bool)
	CurrentPlayer() (Marker, bool)
	WithMove(move Move) (Game, error)

	sealed()
}

type state struct {
	board Board
	moves []Move
}

func (that state) Board() Board {
	return that.board
}

// Moves - a copy of the move history in play order.
func (that state) Moves() []Move {
	return slices.Clone(that.moves)
}

func (that state) sealed() {}

type InProgress struct {
	state
}

type Winner struct {
	state
	player Marker
}

type Draw struct {
	state
}

// NewGame - an empty game waiting for X.
func NewGame() Game {
	return &InProgress{state: state{board: EmptyBoard()}}
}

func (that *InProgress) Status() Status {
	return StatusInProgress
}

func (that *InProgress) IsComplete() bool {
	return false
}

func (that *InProgress) Winner() (Marker, bool) {
	return "", false
}

func (that *InProgress) CurrentPlayer() (Marker, bool) {
	return that.board.NextMarker()
}

func (that *InProgress) WithMove(move Move) (Game, error) {
	board, result, err := play(that.board, move)
	if err != nil {
		return nil, err
	}

	// clipping forces append to copy, so earlier states keep their own history
	moves := append(slices.Clip(that.moves), move)

	return settle(board, result, move.marker, moves), nil
}

func (that *Winner) Status() Status {
	return StatusWinner
}

func (that *Winner) IsComplete() bool {
	return true
}

func (that *Winner) Winner() (Marker, bool) {
	return that.player, true
}

func (that *Winner) CurrentPlayer() (Marker, bool) {
	return "", false
}

func (that *Winner) WithMove(_ Move) (Game, error) {
	return nil, fmt.Errorf("%w: %s won", ErrGameAlreadyComplete, that.player)
}

func (that *Draw) Status() Status {
	return StatusDraw
}

func (that *Draw) IsComplete() bool {
	return true
}

func (that *Draw) Winner() (Marker, bool) {
	return "", false
}

func (that *Draw) CurrentPlayer() (Marker, bool) {
	return "", false
}

func (that *Draw) WithMove(_ Move) (Game, error) {
	return nil, fmt.Errorf("%w: draw", ErrGameAlreadyComplete)
}

// FromMoves - rebuilds a game from its history, validating every move against
// the board it is played on. Moves after the game has ended target closed squares
// and are rejected with ErrInvalidMove.
func FromMoves(moves []Move) (Game, error) {
	if len(moves) == 0 {
		return NewGame(), nil
	}

	board := EmptyBoard()
	result := ongoing

	for i, move := range moves {
		next, moveResult, err := play(board, move)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		board, result = next, moveResult
	}

	return settle(board, result, moves[len(moves)-1].marker, slices.Clone(moves)), nil
}

// Equal reports whether two games are in the same state with the same history.
func Equal(a, b Game) bool {
	if a == nil || b == nil {
		return a == b
	}

	winnerA, _ := a.Winner()
	winnerB, _ := b.Winner()

	return a.Status() == b.Status() &&
		a.Board() == b.Board() &&
		winnerA == winnerB &&
		slices.EqualFunc(a.Moves(), b.Moves(), Move.Equal)
}

type outcome uint8

const (
	ongoing outcome = iota
	won
	drawn
)

// play applies move and, when it ends the game, applies it again with the open
// squares closed so the board never shows an interim turn hand-over.
func play(board Board, move Move) (Board, outcome, error) {
	next, err := board.WithMove(move, false)
	if err != nil {
		return Board{}, ongoing, err
	}

	result := judge(next, move.marker)
	if result == ongoing {
		return next, ongoing, nil
	}

	final, err := board.WithMove(move, true)
	if err != nil {
		return Board{}, ongoing, err
	}

	return final, result, nil
}

func judge(board Board, mover Marker) outcome {
	if hasWinner(board, mover) {
		return won
	}

	if isDraw(board) {
		return drawn
	}

	return ongoing
}

func settle(board Board, result outcome, mover Marker, moves []Move) Game {
	switch result {
	case won:
		return &Winner{state: state{board: board, moves: moves}, player: mover}
	case drawn:
		return &Draw{state: state{board: board, moves: moves}}
	default:
		return &InProgress{state: state{board: board, moves: moves}}
	}
}

func hasWinner(board Board, marker Marker) bool {
	for _, combo := range winCombos {
		if ownedBy(board, combo, marker) {
			return true
		}
	}
	return false
}

func ownedBy(board Board, combo [3]Position, marker Marker) bool {
	for _, position := range combo {
		square := board.At(position)
		if !square.IsTaken() || square.marker != marker {
			return false
		}
	}
	return true
}

func isDraw(board Board) bool {
	for _, square := range board.squares {
		if !square.IsTaken() {
			return false
		}
	}

	return !hasWinner(board, X) && !hasWinner(board, O)
}
