package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

type PlayerService interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	Touch(ctx context.Context, player *entity.Player) error
	RecordResult(ctx context.Context, playerID string, won bool) error
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	Update(ctx context.Context, id string, mutate func(player *entity.Player)) (*entity.Player, error)
}

type playerService struct {
	playerRepo playerRepo
}

func NewPlayerService(playerRepo playerRepo) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
	}
}

// GetOrCreatePlayer - returns the stored player, or a freshly created one when
// id is empty or unknown.
func (that *playerService) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id != "" {
		existingPlayer, err := that.playerRepo.GetByID(ctx, id)
		if err == nil {
			return existingPlayer, nil
		}

		if !errors.Is(err, apperror.ErrPlayerNotFound) {
			return nil, fmt.Errorf("failed to get player by id: %w", err)
		}
	}

	player := entity.NewPlayer("")
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

// Touch - marks the player as active now and refreshes player from storage.
func (that *playerService) Touch(ctx context.Context, player *entity.Player) error {
	now := time.Now().UTC()

	updated, err := that.playerRepo.Update(ctx, player.ID, func(stored *entity.Player) {
		stored.LastActive = now
	})
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	*player = *updated

	return nil
}

func (that *playerService) RecordResult(ctx context.Context, playerID string, won bool) error {
	_, err := that.playerRepo.Update(ctx, playerID, func(stored *entity.Player) {
		stored.RecordResult(won)
	})
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	return nil
}
