package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

const gamesIndexKey = "games"

var ErrGameIDCollision = errors.New("game id already in use")

type GameRepository interface {
	Create(ctx context.Context) (*entity.GameRecord, error)
	GetByID(ctx context.Context, id string) (*entity.GameRecord, error)
	List(ctx context.Context) ([]*entity.GameRecord, error)
	// Update stores game only if the stored version still equals expectedVersion,
	// otherwise it fails with apperror.ErrConcurrencyConflict.
	Update(ctx context.Context, id string, game tictactoe.Game, expectedVersion int64) (*entity.GameRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

// storedGame is the redis representation: only the history is kept and the
// board is rebuilt, and re-validated, on every read.
type storedGame struct {
	Version   int64            `json:"version"`
	CreatedAt time.Time        `json:"created_at"`
	Moves     []tictactoe.Move `json:"moves"`
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func gameKey(id string) string {
	return "game:" + id
}

func (that *dbGame) Create(ctx context.Context) (*entity.GameRecord, error) {
	record := newGameRecord()

	gameJSON, err := encodeGame(record)
	if err != nil {
		return nil, err
	}

	created, err := that.client.SetNX(ctx, gameKey(record.ID), gameJSON, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to set game: %w", err)
	}

	if !created {
		return nil, fmt.Errorf("%w: %s", ErrGameIDCollision, record.ID)
	}

	if err = that.client.SAdd(ctx, gamesIndexKey, record.ID).Err(); err != nil {
		return nil, fmt.Errorf("failed to index game: %w", err)
	}

	return record, nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.GameRecord, error) {
	response, err := that.client.Get(ctx, gameKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return decodeGame(id, []byte(response))
}

func (that *dbGame) List(ctx context.Context) ([]*entity.GameRecord, error) {
	ids, err := that.client.SMembers(ctx, gamesIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list game ids: %w", err)
	}

	if len(ids) == 0 {
		return []*entity.GameRecord{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, gameKey(id))
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}

	records := make([]*entity.GameRecord, 0, len(values))
	for i, value := range values {
		// deleted between SMEMBERS and MGET
		raw, ok := value.(string)
		if !ok {
			continue
		}

		record, err := decodeGame(ids[i], []byte(raw))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	sortRecords(records)

	return records, nil
}

func (that *dbGame) Update(ctx context.Context, id string, game tictactoe.Game, expectedVersion int64) (*entity.GameRecord, error) {
	key := gameKey(id)

	var updated *entity.GameRecord

	txf := func(tx *redis.Tx) error {
		response, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return apperror.ErrGameNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get game: %w", err)
		}

		var current storedGame
		if err = json.Unmarshal([]byte(response), &current); err != nil {
			return fmt.Errorf("failed to unmarshal game: %w", err)
		}

		if current.Version != expectedVersion {
			return fmt.Errorf("%w: game %s is at version %d, expected %d",
				apperror.ErrConcurrencyConflict, id, current.Version, expectedVersion)
		}

		next := &entity.GameRecord{
			ID:        id,
			Version:   current.Version + 1,
			CreatedAt: current.CreatedAt,
			Game:      game,
		}

		gameJSON, err := encodeGame(next)
		if err != nil {
			return err
		}

		if _, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, gameJSON, 0)
			return nil
		}); err != nil {
			return err
		}

		updated = next

		return nil
	}

	err := that.client.Watch(ctx, txf, key)
	if errors.Is(err, redis.TxFailedErr) {
		return nil, fmt.Errorf("%w: game %s", apperror.ErrConcurrencyConflict, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return updated, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, gameKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	if err = that.client.SRem(ctx, gamesIndexKey, id).Err(); err != nil {
		return fmt.Errorf("failed to remove game from index: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrGameNotFound
	}

	return nil
}

func newGameRecord() *entity.GameRecord {
	return &entity.GameRecord{
		ID:        uuid.NewString(),
		Version:   1,
		CreatedAt: time.Now().UTC(),
		Game:      tictactoe.NewGame(),
	}
}

func encodeGame(record *entity.GameRecord) ([]byte, error) {
	gameJSON, err := json.Marshal(storedGame{
		Version:   record.Version,
		CreatedAt: record.CreatedAt,
		Moves:     record.Game.Moves(),
	})
	if err != nil {
		return nil, fmt.Errorf("could not marshal game: %w", err)
	}

	return gameJSON, nil
}

func decodeGame(id string, data []byte) (*entity.GameRecord, error) {
	var stored storedGame
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	game, err := tictactoe.FromMoves(stored.Moves)
	if err != nil {
		return nil, fmt.Errorf("stored game %s is corrupt: %w", id, err)
	}

	return &entity.GameRecord{
		ID:        id,
		Version:   stored.Version,
		CreatedAt: stored.CreatedAt,
		Game:      game,
	}, nil
}

func sortRecords(records []*entity.GameRecord) {
	slices.SortFunc(records, func(a, b *entity.GameRecord) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
}
