package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-web/internal/config"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-web/internal/service"
	"github.com/rocketscienceinc/tictactoe-web/transport/rest"
	"github.com/rocketscienceinc/tictactoe-web/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

type repositories struct {
	games       repository.GameRepository
	players     repository.PlayerRepository
	assignments repository.AssignmentRepository
	accounts    repository.AccountRepository
	close       func() error
}

// RunApp - runs the application until ctx is canceled or a signal arrives.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	repos, err := openRepositories(ctx, log, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = repos.close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	hub := websocket.NewHub(logger)

	playerService := service.NewPlayerService(repos.players)
	gamePlayService := service.NewGamePlayService(logger, repos.games, repos.assignments, playerService, hub, conf.MaxMoveRetries)
	accountService := service.NewAccountService(logger, repos.accounts, repos.players)
	sessionService := service.NewSessionService(conf.JWTSecretKey)

	restServer := rest.New(logger, gamePlayService, playerService, accountService, sessionService, conf.PublicURL)
	wsServer := websocket.New(logger, hub, gamePlayService)
	restServer.Handle(http.MethodGet, "/ws/games/:id", restServer.WithSession(wsServer.ServeGame))

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage)
		httpErrCh <- restServer.Start(ctx, conf.HTTPPort)
	}()

	select {
	case err = <-httpErrCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return <-httpErrCh
	}
}

func openRepositories(ctx context.Context, log *slog.Logger, conf *config.Config) (*repositories, error) {
	if conf.Storage == config.StorageMemory {
		log.Warn("using in-memory storage, games are lost on restart")

		return &repositories{
			games:       repository.NewMemoryGameRepository(),
			players:     repository.NewMemoryPlayerRepository(),
			assignments: repository.NewMemoryAssignmentRepository(),
			accounts:    repository.NewMemoryAccountRepository(),
			close:       func() error { return nil },
		}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return &repositories{
		games:       repository.NewGameRepository(redisStorage),
		players:     repository.NewPlayerRepository(redisStorage),
		assignments: repository.NewAssignmentRepository(redisStorage),
		accounts:    repository.NewAccountRepository(redisStorage),
		close:       redisStorage.Close,
	}, nil
}
