package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

const (
	retryInitialInterval = 10 * time.Millisecond
	retryMaxInterval     = 200 * time.Millisecond
)

type GamePlayService interface {
	CreateGame(ctx context.Context, playerID string) (*entity.GameRecord, error)
	JoinGame(ctx context.Context, gameID, playerID string) (*entity.GameRecord, tictactoe.Marker, error)

	GetGame(ctx context.Context, gameID string) (*entity.GameRecord, error)
	GetPlayers(ctx context.Context, gameID string) (*entity.Assignment, error)
	ListGames(ctx context.Context) ([]*entity.GameRecord, error)

	MakeMove(ctx context.Context, gameID, playerID string, position int) (*entity.GameRecord, error)

	DeleteGame(ctx context.Context, gameID string) error
}

// Notifier - receives every new state of a game together with its players.
type Notifier interface {
	Publish(gameID string, record *entity.GameRecord, assignment *entity.Assignment)
}

type NopNotifier struct{}

func (NopNotifier) Publish(string, *entity.GameRecord, *entity.Assignment) {}

type gameRepo interface {
	Create(ctx context.Context) (*entity.GameRecord, error)
	GetByID(ctx context.Context, id string) (*entity.GameRecord, error)
	List(ctx context.Context) ([]*entity.GameRecord, error)
	Update(ctx context.Context, id string, game tictactoe.Game, expectedVersion int64) (*entity.GameRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

type assignmentRepo interface {
	Assign(ctx context.Context, gameID, playerID string, marker tictactoe.Marker) error
	Get(ctx context.Context, gameID string) (*entity.Assignment, error)
	DeleteByGameID(ctx context.Context, gameID string) error
}

type gamePlayService struct {
	logger *slog.Logger

	gameRepo       gameRepo
	assignmentRepo assignmentRepo
	playerService  PlayerService
	notifier       Notifier

	maxMoveRetries uint64
}

func NewGamePlayService(
	logger *slog.Logger,
	gameRepo gameRepo,
	assignmentRepo assignmentRepo,
	playerService PlayerService,
	notifier Notifier,
	maxMoveRetries int,
) GamePlayService {
	if notifier == nil {
		notifier = NopNotifier{}
	}

	if maxMoveRetries < 0 {
		maxMoveRetries = 0
	}

	return &gamePlayService{
		logger:         logger.With("component", "gameplay"),
		gameRepo:       gameRepo,
		assignmentRepo: assignmentRepo,
		playerService:  playerService,
		notifier:       notifier,
		maxMoveRetries: uint64(maxMoveRetries),
	}
}

// CreateGame - stores a new game and gives its creator X.
func (that *gamePlayService) CreateGame(ctx context.Context, playerID string) (*entity.GameRecord, error) {
	record, err := that.gameRepo.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.assignmentRepo.Assign(ctx, record.ID, playerID, tictactoe.X); err != nil {
		return nil, fmt.Errorf("failed to assign creator: %w", err)
	}

	that.logger.Info("game created", "gameID", record.ID, "playerID", playerID)

	return record, nil
}

// JoinGame - gives the player the free marker. Players already in the game get
// their marker back.
func (that *gamePlayService) JoinGame(ctx context.Context, gameID, playerID string) (*entity.GameRecord, tictactoe.Marker, error) {
	log := that.logger.With("method", "JoinGame", "gameID", gameID, "playerID", playerID)

	record, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get game by id: %w", err)
	}

	assignment, err := that.assignmentRepo.Get(ctx, gameID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get players: %w", err)
	}

	if marker, ok := assignment.MarkerOf(playerID); ok {
		return record, marker, nil
	}

	if assignment.IsFull() {
		return nil, "", fmt.Errorf("%w: %s", apperror.ErrGameFull, gameID)
	}

	marker := tictactoe.O
	if _, taken := assignment.PlayerOf(tictactoe.X); !taken {
		marker = tictactoe.X
	}

	err = that.assignmentRepo.Assign(ctx, gameID, playerID, marker)
	if errors.Is(err, apperror.ErrMarkerTaken) || errors.Is(err, apperror.ErrConcurrencyConflict) {
		return nil, "", fmt.Errorf("%w: %s", apperror.ErrGameFull, gameID)
	}

	if err != nil {
		return nil, "", fmt.Errorf("failed to assign player: %w", err)
	}

	log.Info("player joined", "marker", marker)

	players, err := that.assignmentRepo.Get(ctx, gameID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get players: %w", err)
	}

	that.notifier.Publish(gameID, record, players)

	return record, marker, nil
}

func (that *gamePlayService) GetGame(ctx context.Context, gameID string) (*entity.GameRecord, error) {
	record, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return record, nil
}

func (that *gamePlayService) GetPlayers(ctx context.Context, gameID string) (*entity.Assignment, error) {
	assignment, err := that.assignmentRepo.Get(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	return assignment, nil
}

func (that *gamePlayService) ListGames(ctx context.Context) ([]*entity.GameRecord, error) {
	records, err := that.gameRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	return records, nil
}

// MakeMove - plays position for the player's marker. Lost compare-and-swap races
// are retried on a fresh read; engine errors are returned as is.
func (that *gamePlayService) MakeMove(ctx context.Context, gameID, playerID string, position int) (*entity.GameRecord, error) {
	log := that.logger.With("method", "MakeMove", "gameID", gameID, "playerID", playerID)

	pos, err := tictactoe.NewPosition(position)
	if err != nil {
		return nil, err
	}

	assignment, err := that.assignmentRepo.Get(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	marker, ok := assignment.MarkerOf(playerID)
	if !ok {
		// unknown games have no players either
		if _, err = that.gameRepo.GetByID(ctx, gameID); err != nil {
			return nil, fmt.Errorf("failed to get game by id: %w", err)
		}
		return nil, fmt.Errorf("%w: %s", apperror.ErrNotInGame, gameID)
	}

	var updated *entity.GameRecord

	attempt := func() error {
		record, err := that.gameRepo.GetByID(ctx, gameID)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to get game by id: %w", err))
		}

		move, err := tictactoe.NewMove(pos, marker)
		if err != nil {
			return backoff.Permanent(err)
		}

		game, err := record.Game.WithMove(move)
		if err != nil {
			return backoff.Permanent(err)
		}

		updated, err = that.gameRepo.Update(ctx, gameID, game, record.Version)
		if errors.Is(err, apperror.ErrConcurrencyConflict) {
			log.Debug("lost update race, retrying", "version", record.Version)
			return err
		}

		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to update game: %w", err))
		}

		return nil
	}

	if err = backoff.Retry(attempt, that.retryPolicy(ctx)); err != nil {
		return nil, err
	}

	log.Info("move played", "move", pos, "marker", marker, "version", updated.Version)

	if updated.Game.IsComplete() {
		that.recordResults(ctx, assignment, updated.Game)
	}

	that.notifier.Publish(gameID, updated, assignment)

	return updated, nil
}

// DeleteGame - removes the game and its players.
func (that *gamePlayService) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	if err := that.assignmentRepo.DeleteByGameID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}

	that.logger.Info("game deleted", "gameID", gameID)

	return nil
}

func (that *gamePlayService) retryPolicy(ctx context.Context) backoff.BackOff {
	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = retryInitialInterval
	exponential.MaxInterval = retryMaxInterval

	return backoff.WithContext(backoff.WithMaxRetries(exponential, that.maxMoveRetries), ctx)
}

// recordResults - stats are best effort; the game itself is already stored.
func (that *gamePlayService) recordResults(ctx context.Context, assignment *entity.Assignment, game tictactoe.Game) {
	log := that.logger.With("method", "recordResults", "gameID", assignment.GameID)

	winner, hasWinner := game.Winner()

	for marker, playerID := range assignment.Players {
		won := hasWinner && winner == marker
		if err := that.playerService.RecordResult(ctx, playerID, won); err != nil {
			log.Error("failed to record result", "playerID", playerID, "error", err)
		}
	}

	log.Info("game finished", "status", game.Status())
}
