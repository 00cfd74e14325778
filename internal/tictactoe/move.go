package tictactoe

import (
	"encoding/json"
	"fmt"
	"time"
)

// Move is a single marker placement. The zero value is not a valid move.
type Move struct {
	position  Position
	marker    Marker
	timestamp time.Time
}

// NewMove - creates a move stamped with the current UTC time.
// Whether it is the marker's turn is decided later against the board.
func NewMove(position Position, marker Marker) (Move, error) {
	return RestoreMove(position, marker, time.Now())
}

// RestoreMove - rebuilds a previously played move with its original timestamp.
func RestoreMove(position Position, marker Marker, at time.Time) (Move, error) {
	if !position.Valid() {
		return Move{}, fmt.Errorf("%w: %d", ErrOutOfRange, position)
	}

	return Move{
		position:  position,
		marker:    marker,
		timestamp: at.UTC(),
	}, nil
}

func (that Move) Position() Position {
	return that.position
}

func (that Move) Marker() Marker {
	return that.marker
}

func (that Move) Timestamp() time.Time {
	return that.timestamp
}

// Equal reports whether both moves describe the same placement at the same instant.
func (that Move) Equal(other Move) bool {
	return that.position == other.position &&
		that.marker == other.marker &&
		that.timestamp.Equal(other.timestamp)
}

func (that Move) String() string {
	return fmt.Sprintf("%s@%d", that.marker, that.position)
}

type moveJSON struct {
	Position  int       `json:"position"`
	Marker    string    `json:"marker"`
	Timestamp time.Time `json:"timestamp"`
}

func (that Move) MarshalJSON() ([]byte, error) {
	return json.Marshal(moveJSON{
		Position:  int(that.position),
		Marker:    string(that.marker),
		Timestamp: that.timestamp,
	})
}

func (that *Move) UnmarshalJSON(data []byte) error {
	var raw moveJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal move: %w", err)
	}

	position, err := NewPosition(raw.Position)
	if err != nil {
		return err
	}

	marker, err := ParseMarker(raw.Marker)
	if err != nil {
		return err
	}

	move, err := RestoreMove(position, marker, raw.Timestamp)
	if err != nil {
		return err
	}

	*that = move

	return nil
}
