package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-web/internal/view"
)

const (
	ActionGameState  = "game:state"
	ActionGameTurn   = "game:turn"
	ActionGameUpdate = "game:update"
	ActionError      = "error"
)

// Message - a client request.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type TurnPayload struct {
	Position *int `json:"position"`
}

// Response - everything the server sends to a client.
type Response struct {
	Action  string           `json:"action"`
	Payload *ResponsePayload `json:"payload,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type ResponsePayload struct {
	Game *view.GameView `json:"game,omitempty"`
}

func gameResponse(action string, gameView view.GameView) Response {
	return Response{
		Action:  action,
		Payload: &ResponsePayload{Game: &gameView},
	}
}

func errorResponse(err error) Response {
	return Response{
		Action: ActionError,
		Error:  err.Error(),
	}
}
