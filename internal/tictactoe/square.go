package tictactoe

// SquareState tells which variant a Square holds.
type SquareState uint8

const (
	SquareAvailable SquareState = iota + 1
	SquareTaken
	SquareUnavailable
)

// Square is one board cell: Taken by a marker, Available to the next marker,
// or Unavailable once the game is over.
type Square struct {
	state  SquareState
	marker Marker
}

func Taken(marker Marker) Square {
	return Square{state: SquareTaken, marker: marker}
}

// Available - an empty square that next may claim.
func Available(next Marker) Square {
	return Square{state: SquareAvailable, marker: next}
}

func Unavailable() Square {
	return Square{state: SquareUnavailable}
}

func (that Square) State() SquareState {
	return that.state
}

func (that Square) IsTaken() bool {
	return that.state == SquareTaken
}

func (that Square) IsAvailable() bool {
	return that.state == SquareAvailable
}

func (that Square) IsUnavailable() bool {
	return that.state == SquareUnavailable
}

// Marker - returns the owner of a taken square or the marker entitled to claim an available one.
func (that Square) Marker() (Marker, bool) {
	if that.state == SquareTaken || that.state == SquareAvailable {
		return that.marker, true
	}
	return "", false
}

func (that Square) String() string {
	switch that.state {
	case SquareTaken:
		return "Taken(" + string(that.marker) + ")"
	case SquareAvailable:
		return "Available(" + string(that.marker) + ")"
	case SquareUnavailable:
		return "Unavailable"
	default:
		return "Invalid"
	}
}
