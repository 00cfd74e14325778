package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	mockedService "github.com/rocketscienceinc/tictactoe-web/mocks/service"
)

func TestPlayerService_GetOrCreatePlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a new player when id is empty", func(t *testing.T) {
		// Given: a repository that accepts the new player
		mockPlayerRepo := mockedService.NewMockplayerRepo(t)
		mockPlayerRepo.EXPECT().
			CreateOrUpdate(mock.Anything, mock.AnythingOfType("*entity.Player")).
			Return(nil).
			Once()

		// When: GetOrCreatePlayer is called without an id
		player, err := NewPlayerService(mockPlayerRepo).GetOrCreatePlayer(ctx, "")

		// Then: a new player with a generated id is returned
		require.NoError(t, err)
		assert.NotEmpty(t, player.ID)
	})

	t.Run("Returns the existing player", func(t *testing.T) {
		existingPlayer := &entity.Player{ID: "player123"}

		mockPlayerRepo := mockedService.NewMockplayerRepo(t)
		mockPlayerRepo.EXPECT().
			GetByID(mock.Anything, "player123").
			Return(existingPlayer, nil).
			Once()

		player, err := NewPlayerService(mockPlayerRepo).GetOrCreatePlayer(ctx, "player123")

		require.NoError(t, err)
		assert.Equal(t, existingPlayer, player)
	})

	t.Run("Creates a new player when the id is unknown", func(t *testing.T) {
		mockPlayerRepo := mockedService.NewMockplayerRepo(t)
		mockPlayerRepo.EXPECT().
			GetByID(mock.Anything, "gone").
			Return(nil, apperror.ErrPlayerNotFound).
			Once()
		mockPlayerRepo.EXPECT().
			CreateOrUpdate(mock.Anything, mock.AnythingOfType("*entity.Player")).
			Return(nil).
			Once()

		player, err := NewPlayerService(mockPlayerRepo).GetOrCreatePlayer(ctx, "gone")

		require.NoError(t, err)
		assert.NotEqual(t, "gone", player.ID)
	})

	t.Run("Returns error if the repository is down", func(t *testing.T) {
		mockPlayerRepo := mockedService.NewMockplayerRepo(t)
		mockPlayerRepo.EXPECT().
			GetByID(mock.Anything, "playerErr").
			Return(nil, errRedisDown).
			Once()

		player, err := NewPlayerService(mockPlayerRepo).GetOrCreatePlayer(ctx, "playerErr")

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, player)
	})

	t.Run("Returns error if CreateOrUpdate fails", func(t *testing.T) {
		mockPlayerRepo := mockedService.NewMockplayerRepo(t)
		mockPlayerRepo.EXPECT().
			CreateOrUpdate(mock.Anything, mock.AnythingOfType("*entity.Player")).
			Return(errRedisDown).
			Once()

		player, err := NewPlayerService(mockPlayerRepo).GetOrCreatePlayer(ctx, "")

		require.Error(t, err)
		assert.Nil(t, player)
	})
}

// applyTo - makes a mocked Update run mutate against stored.
func applyTo(stored *entity.Player) func(context.Context, string, func(*entity.Player)) (*entity.Player, error) {
	return func(_ context.Context, _ string, mutate func(*entity.Player)) (*entity.Player, error) {
		mutate(stored)
		updated := *stored
		return &updated, nil
	}
}

func TestPlayerService_Touch(t *testing.T) {
	t.Run("Refreshes LastActive from storage", func(t *testing.T) {
		// Given: a stored player with stats the caller has not seen yet
		stored := &entity.Player{ID: "p1", GamesPlayed: 4}
		player := &entity.Player{ID: "p1"}

		mockPlayerRepo := mockedService.NewMockplayerRepo(t)
		mockPlayerRepo.EXPECT().
			Update(mock.Anything, "p1", mock.Anything).
			RunAndReturn(applyTo(stored)).
			Once()

		// When: the player is touched
		before := time.Now().UTC()
		err := NewPlayerService(mockPlayerRepo).Touch(context.Background(), player)

		// Then: the caller's copy carries the stored stats and a fresh LastActive
		require.NoError(t, err)
		assert.False(t, player.LastActive.Before(before))
		assert.Equal(t, 4, player.GamesPlayed)
	})

	t.Run("Returns error if the player is gone", func(t *testing.T) {
		player := &entity.Player{ID: "ghost"}

		mockPlayerRepo := mockedService.NewMockplayerRepo(t)
		mockPlayerRepo.EXPECT().
			Update(mock.Anything, "ghost", mock.Anything).
			Return(nil, apperror.ErrPlayerNotFound).
			Once()

		err := NewPlayerService(mockPlayerRepo).Touch(context.Background(), player)

		require.ErrorIs(t, err, apperror.ErrPlayerNotFound)
		assert.True(t, player.LastActive.IsZero())
	})
}

func TestPlayerService_RecordResult(t *testing.T) {
	ctx := context.Background()

	t.Run("Counts the win", func(t *testing.T) {
		stored := &entity.Player{ID: "p1", GamesPlayed: 2, GamesWon: 1}

		mockPlayerRepo := mockedService.NewMockplayerRepo(t)
		mockPlayerRepo.EXPECT().
			Update(mock.Anything, "p1", mock.Anything).
			RunAndReturn(applyTo(stored)).
			Once()

		err := NewPlayerService(mockPlayerRepo).RecordResult(ctx, "p1", true)

		require.NoError(t, err)
		assert.Equal(t, 3, stored.GamesPlayed)
		assert.Equal(t, 2, stored.GamesWon)
	})

	t.Run("Counts the loss", func(t *testing.T) {
		stored := &entity.Player{ID: "p2", GamesPlayed: 2, GamesWon: 1}

		mockPlayerRepo := mockedService.NewMockplayerRepo(t)
		mockPlayerRepo.EXPECT().
			Update(mock.Anything, "p2", mock.Anything).
			RunAndReturn(applyTo(stored)).
			Once()

		err := NewPlayerService(mockPlayerRepo).RecordResult(ctx, "p2", false)

		require.NoError(t, err)
		assert.Equal(t, 3, stored.GamesPlayed)
		assert.Equal(t, 1, stored.GamesWon)
	})

	t.Run("Returns ErrPlayerNotFound for unknown players", func(t *testing.T) {
		mockPlayerRepo := mockedService.NewMockplayerRepo(t)
		mockPlayerRepo.EXPECT().
			Update(mock.Anything, "ghost", mock.Anything).
			Return(nil, apperror.ErrPlayerNotFound).
			Once()

		err := NewPlayerService(mockPlayerRepo).RecordResult(ctx, "ghost", false)

		require.ErrorIs(t, err, apperror.ErrPlayerNotFound)
	})
}
