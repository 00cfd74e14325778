package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

type AssignmentRepository interface {
	Assign(ctx context.Context, gameID, playerID string, marker tictactoe.Marker) error
	Get(ctx context.Context, gameID string) (*entity.Assignment, error)
	DeleteByGameID(ctx context.Context, gameID string) error
}

type dbAssignment struct {
	client *redis.Client
}

func NewAssignmentRepository(client *redis.Client) AssignmentRepository {
	return &dbAssignment{
		client: client,
	}
}

// assignmentKey - hash of marker => player id.
func assignmentKey(gameID string) string {
	return gameKey(gameID) + ":players"
}

func (that *dbAssignment) Assign(ctx context.Context, gameID, playerID string, marker tictactoe.Marker) error {
	key := assignmentKey(gameID)

	txf := func(tx *redis.Tx) error {
		assignment, err := readAssignment(ctx, tx, gameID)
		if err != nil {
			return err
		}

		if holder, ok := assignment.PlayerOf(marker); ok && holder == playerID {
			return nil
		}

		if err = assignment.Assign(playerID, marker); err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, marker.String(), playerID)
			return nil
		})

		return err
	}

	err := that.client.Watch(ctx, txf, key)
	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("%w: players of game %s", apperror.ErrConcurrencyConflict, gameID)
	}

	if err != nil {
		return fmt.Errorf("failed to assign player: %w", err)
	}

	return nil
}

func (that *dbAssignment) Get(ctx context.Context, gameID string) (*entity.Assignment, error) {
	return readAssignment(ctx, that.client, gameID)
}

func (that *dbAssignment) DeleteByGameID(ctx context.Context, gameID string) error {
	if err := that.client.Del(ctx, assignmentKey(gameID)).Err(); err != nil {
		return fmt.Errorf("failed to delete players of game: %w", err)
	}

	return nil
}

// hashReader - satisfied by both *redis.Client and *redis.Tx.
type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

func readAssignment(ctx context.Context, cmd hashReader, gameID string) (*entity.Assignment, error) {
	fields, err := cmd.HGetAll(ctx, assignmentKey(gameID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get players of game: %w", err)
	}

	assignment := entity.NewAssignment(gameID)
	for field, playerID := range fields {
		marker, err := tictactoe.ParseMarker(field)
		if err != nil {
			return nil, fmt.Errorf("stored players of game %s are corrupt: %w", gameID, err)
		}
		assignment.Players[marker] = playerID
	}

	return assignment, nil
}
