// Package view turns stored games into the JSON documents served to clients.
package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

type MoveView struct {
	Position  int              `json:"position"`
	Marker    tictactoe.Marker `json:"marker"`
	Timestamp time.Time        `json:"timestamp"`
}

type GameView struct {
	ID            string                      `json:"id"`
	Version       int64                       `json:"version"`
	Board         [9]*tictactoe.Marker        `json:"board"`
	CurrentPlayer *tictactoe.Marker           `json:"current_player"`
	IsComplete    bool                        `json:"is_complete"`
	Winner        *tictactoe.Marker           `json:"winner"`
	Status        tictactoe.Status            `json:"status"`
	Moves         []MoveView                  `json:"moves"`
	Players       map[tictactoe.Marker]string `json:"players,omitempty"`
}

// FromRecord - builds the view of a stored game. Whose turn it is comes from
// the board's open squares, not from the move count.
func FromRecord(record *entity.GameRecord) GameView {
	game := record.Game
	board := game.Board()

	gameView := GameView{
		ID:         record.ID,
		Version:    record.Version,
		IsComplete: game.IsComplete(),
		Status:     game.Status(),
		Moves:      make([]MoveView, 0, len(game.Moves())),
	}

	for i, square := range board.Squares() {
		if square.IsTaken() {
			marker, _ := square.Marker()
			gameView.Board[i] = &marker
		}
	}

	if next, ok := board.NextMarker(); ok {
		gameView.CurrentPlayer = &next
	}

	if winner, ok := game.Winner(); ok {
		gameView.Winner = &winner
	}

	for _, move := range game.Moves() {
		gameView.Moves = append(gameView.Moves, MoveView{
			Position:  int(move.Position()),
			Marker:    move.Marker(),
			Timestamp: move.Timestamp(),
		})
	}

	return gameView
}

// WithPlayers - adds who holds which marker.
func (that GameView) WithPlayers(assignment *entity.Assignment) GameView {
	if assignment == nil || len(assignment.Players) == 0 {
		return that
	}

	that.Players = make(map[tictactoe.Marker]string, len(assignment.Players))
	for marker, playerID := range assignment.Players {
		that.Players[marker] = playerID
	}

	return that
}

func FromRecords(records []*entity.GameRecord) []GameView {
	views := make([]GameView, 0, len(records))
	for _, record := range records {
		views = append(views, FromRecord(record))
	}
	return views
}

// ParsePosition - reads a board position from a path or message value.
func ParsePosition(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a position", tictactoe.ErrOutOfRange, raw)
	}

	position, err := tictactoe.NewPosition(n)
	if err != nil {
		return 0, err
	}

	return int(position), nil
}
