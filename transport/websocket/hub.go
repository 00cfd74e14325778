package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/view"
)

const (
	sendBufferSize = 8
	writeWait      = 10 * time.Second
)

type client struct {
	conn     *websocket.Conn
	send     chan Response
	gameID   string
	playerID string
}

func (that *client) writePump() {
	defer that.conn.Close()

	for response := range that.send {
		_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := that.conn.WriteJSON(response); err != nil {
			return
		}
	}

	_ = that.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

// Hub - websocket clients grouped by the game they watch. It implements the
// gameplay notifier, so every stored move reaches every watcher.
type Hub struct {
	logger *slog.Logger

	mu    sync.Mutex
	rooms map[string]map[*client]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger.With("component", "hub"),
		rooms:  make(map[string]map[*client]struct{}),
	}
}

// Publish - broadcasts the new state of a game and its players to its watchers.
func (that *Hub) Publish(gameID string, record *entity.GameRecord, assignment *entity.Assignment) {
	that.broadcast(gameID, gameResponse(ActionGameUpdate, view.FromRecord(record).WithPlayers(assignment)))
}

// Watchers - number of clients connected to a game.
func (that *Hub) Watchers(gameID string) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.rooms[gameID])
}

func (that *Hub) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[c.gameID]
	if !ok {
		room = make(map[*client]struct{})
		that.rooms[c.gameID] = room
	}
	room[c] = struct{}{}
}

func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.dropLocked(c)
}

// sendTo - queues a response for one client; false if it is gone.
func (that *Hub) sendTo(c *client, response Response) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[c.gameID][c]; !ok {
		return false
	}

	return that.queueLocked(c, response)
}

func (that *Hub) broadcast(gameID string, response Response) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for c := range that.rooms[gameID] {
		that.queueLocked(c, response)
	}
}

// queueLocked - slow clients are dropped instead of blocking the game.
func (that *Hub) queueLocked(c *client, response Response) bool {
	select {
	case c.send <- response:
		return true
	default:
		that.logger.Warn("dropping slow client", "gameID", c.gameID, "playerID", c.playerID)
		that.dropLocked(c)
		return false
	}
}

func (that *Hub) dropLocked(c *client) {
	room, ok := that.rooms[c.gameID]
	if !ok {
		return
	}

	if _, ok = room[c]; !ok {
		return
	}

	delete(room, c)
	close(c.send)

	if len(room) == 0 {
		delete(that.rooms, c.gameID)
	}
}
