package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/service"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

const shutdownTimeout = 5 * time.Second

type gamePlayService interface {
	CreateGame(ctx context.Context, playerID string) (*entity.GameRecord, error)
	JoinGame(ctx context.Context, gameID, playerID string) (*entity.GameRecord, tictactoe.Marker, error)
	GetGame(ctx context.Context, gameID string) (*entity.GameRecord, error)
	GetPlayers(ctx context.Context, gameID string) (*entity.Assignment, error)
	ListGames(ctx context.Context) ([]*entity.GameRecord, error)
	MakeMove(ctx context.Context, gameID, playerID string, position int) (*entity.GameRecord, error)
	DeleteGame(ctx context.Context, gameID string) error
}

type playerService interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	Touch(ctx context.Context, player *entity.Player) error
}

type accountService interface {
	Register(ctx context.Context, playerID string, registration service.Registration) (*entity.Player, error)
	Login(ctx context.Context, email, password string) (*entity.Player, error)
}

type sessionService interface {
	Issue(playerID string) (string, error)
	Parse(token string) (*service.Session, error)
}

type Server struct {
	logger *slog.Logger

	gamePlay gamePlayService
	players  playerService
	accounts accountService
	sessions sessionService

	publicURL string
	router    *httprouter.Router
}

func New(
	logger *slog.Logger,
	gamePlay gamePlayService,
	players playerService,
	accounts accountService,
	sessions sessionService,
	publicURL string,
) *Server {
	server := &Server{
		logger:    logger.With("component", "rest"),
		gamePlay:  gamePlay,
		players:   players,
		accounts:  accounts,
		sessions:  sessions,
		publicURL: publicURL,
		router:    httprouter.New(),
	}

	server.router.PanicHandler = server.handlePanic
	server.router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})

	server.router.GET("/ping", server.handlePing)

	server.router.GET("/games", server.WithSession(server.handleListGames))
	server.router.POST("/games", server.WithSession(server.handleCreateGame))
	server.router.GET("/games/:id", server.WithSession(server.handleGetGame))
	server.router.DELETE("/games/:id", server.WithSession(server.handleDeleteGame))
	server.router.POST("/games/:id/join", server.WithSession(server.handleJoinGame))
	server.router.POST("/games/:id/moves/:position", server.WithSession(server.handleMakeMove))
	server.router.GET("/games/:id/qr", server.WithSession(server.handleQRCode))

	server.router.GET("/players/me", server.WithSession(server.handleMe))
	server.router.POST("/players/register", server.WithSession(server.handleRegister))
	server.router.POST("/players/login", server.handleLogin)
	server.router.POST("/players/logout", server.handleLogout)

	return server
}

// Handle - registers an extra route, e.g. the websocket endpoint.
func (that *Server) Handle(method, path string, handle httprouter.Handle) {
	that.router.Handle(method, path, handle)
}

func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	that.router.ServeHTTP(w, r)
}

// Start - serves HTTP on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort("", port),
		Handler:           that,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}

func (that *Server) handlePanic(w http.ResponseWriter, r *http.Request, recovered any) {
	that.logger.Error("panic while serving request", "path", r.URL.Path, "panic", recovered)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
