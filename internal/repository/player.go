package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const (
	maxPlayerUpdateRetries     = 4
	playerRetryInitialInterval = 5 * time.Millisecond
	playerRetryMaxInterval     = 100 * time.Millisecond
)

type PlayerRepository interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	// Update applies mutate to the stored player atomically and returns the
	// result. Concurrent updates of the same player never overwrite each other.
	Update(ctx context.Context, id string, mutate func(player *entity.Player)) (*entity.Player, error)
}

type dbPlayer struct {
	client *redis.Client
}

func NewPlayerRepository(client *redis.Client) PlayerRepository {
	return &dbPlayer{
		client: client,
	}
}

func playerKey(id string) string {
	return "player:" + id
}

func (that *dbPlayer) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	playerJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	if err = that.client.Set(ctx, playerKey(player.ID), playerJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set player: %w", err)
	}

	return nil
}

func (that *dbPlayer) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	return readPlayer(ctx, that.client, id)
}

func (that *dbPlayer) Update(ctx context.Context, id string, mutate func(player *entity.Player)) (*entity.Player, error) {
	key := playerKey(id)

	var updated *entity.Player

	txf := func(tx *redis.Tx) error {
		player, err := readPlayer(ctx, tx, id)
		if err != nil {
			return err
		}

		mutate(player)

		playerJSON, err := json.Marshal(player)
		if err != nil {
			return fmt.Errorf("failed to marshal player: %w", err)
		}

		if _, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, playerJSON, 0)
			return nil
		}); err != nil {
			return err
		}

		updated = player

		return nil
	}

	// a lost race only means the player changed under us; read it again
	attempt := func() error {
		err := that.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			return err
		}

		if err != nil {
			return backoff.Permanent(err)
		}

		return nil
	}

	err := backoff.Retry(attempt, playerUpdatePolicy(ctx))
	if errors.Is(err, redis.TxFailedErr) {
		return nil, fmt.Errorf("%w: player %s", apperror.ErrConcurrencyConflict, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	return updated, nil
}

func playerUpdatePolicy(ctx context.Context) backoff.BackOff {
	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = playerRetryInitialInterval
	exponential.MaxInterval = playerRetryMaxInterval

	return backoff.WithContext(backoff.WithMaxRetries(exponential, maxPlayerUpdateRetries), ctx)
}

type stringReader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readPlayer(ctx context.Context, reader stringReader, id string) (*entity.Player, error) {
	response, err := reader.Get(ctx, playerKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrPlayerNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	var existingPlayer entity.Player
	if err = json.Unmarshal([]byte(response), &existingPlayer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}

	return &existingPlayer, nil
}
