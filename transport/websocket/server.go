package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/view"
	"github.com/rocketscienceinc/tictactoe-web/transport/rest"
)

var (
	ErrUnknownAction = errors.New("unknown action")

	errInternal = errors.New("internal server error")
)

type gamePlayService interface {
	GetGame(ctx context.Context, gameID string) (*entity.GameRecord, error)
	GetPlayers(ctx context.Context, gameID string) (*entity.Assignment, error)
	MakeMove(ctx context.Context, gameID, playerID string, position int) (*entity.GameRecord, error)
}

type Server struct {
	logger   *slog.Logger
	hub      *Hub
	gamePlay gamePlayService
	upgrader websocket.Upgrader

	handlers map[string]func(ctx context.Context, c *client, message *Message) error
}

func New(logger *slog.Logger, hub *Hub, gamePlay gamePlayService) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		hub:      hub,
		gamePlay: gamePlay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		handlers: make(map[string]func(context.Context, *client, *Message) error),
	}

	server.handlers[ActionGameState] = server.handleGameState
	server.handlers[ActionGameTurn] = server.handleGameTurn

	return server
}

// ServeGame - upgrades GET /ws/games/:id. Must run behind rest.Server.WithSession.
func (that *Server) ServeGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	log := that.logger.With("method", "ServeGame")

	player, ok := rest.PlayerFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	gameID := ps.ByName("id")

	gameView, err := that.gameView(r.Context(), gameID)
	if err != nil {
		status := rest.StatusOf(err)
		if status == http.StatusInternalServerError {
			log.Error("failed to load game", "gameID", gameID, "error", err)
			http.Error(w, http.StatusText(status), status)
			return
		}

		http.Error(w, err.Error(), status)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{
		conn:     conn,
		send:     make(chan Response, sendBufferSize),
		gameID:   gameID,
		playerID: player.ID,
	}

	that.hub.register(c)
	go c.writePump()

	log = log.With("gameID", gameID, "playerID", player.ID)
	log.Info("websocket connection established")

	that.hub.sendTo(c, gameResponse(ActionGameState, gameView))

	that.handleMessages(r.Context(), c)

	log.Info("websocket connection closed")
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleMessages", "gameID", c.gameID, "playerID", c.playerID)

	defer that.hub.unregister(c)

	for {
		var message Message
		if err := c.conn.ReadJSON(&message); err != nil {
			var (
				syntaxErr *json.SyntaxError
				typeErr   *json.UnmarshalTypeError
			)
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				that.hub.sendTo(c, errorResponse(fmt.Errorf("malformed message: %w", err)))
				continue
			}

			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("error reading message", "error", err)
			}
			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			that.hub.sendTo(c, errorResponse(fmt.Errorf("%w: %q", ErrUnknownAction, message.Action)))
			continue
		}

		if err := handler(ctx, c, &message); err != nil {
			if rest.StatusOf(err) == http.StatusInternalServerError {
				log.Error("message failed", "action", message.Action, "error", err)
				that.hub.sendTo(c, errorResponse(errInternal))
				continue
			}

			log.Info("message rejected", "action", message.Action, "error", err)
			that.hub.sendTo(c, errorResponse(err))
		}
	}
}

func (that *Server) handleGameState(ctx context.Context, c *client, _ *Message) error {
	gameView, err := that.gameView(ctx, c.gameID)
	if err != nil {
		return err
	}

	that.hub.sendTo(c, gameResponse(ActionGameState, gameView))

	return nil
}

func (that *Server) gameView(ctx context.Context, gameID string) (view.GameView, error) {
	record, err := that.gamePlay.GetGame(ctx, gameID)
	if err != nil {
		return view.GameView{}, err
	}

	assignment, err := that.gamePlay.GetPlayers(ctx, gameID)
	if err != nil {
		return view.GameView{}, err
	}

	return view.FromRecord(record).WithPlayers(assignment), nil
}

// handleGameTurn - the resulting state reaches the client through the hub.
func (that *Server) handleGameTurn(ctx context.Context, c *client, message *Message) error {
	var payload TurnPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Position == nil {
		return errors.New("position is required")
	}

	if _, err := that.gamePlay.MakeMove(ctx, c.gameID, c.playerID, *payload.Position); err != nil {
		return err
	}

	return nil
}
