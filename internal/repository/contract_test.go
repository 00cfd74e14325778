package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPlay(t *testing.T, game tictactoe.Game, position int, marker tictactoe.Marker) tictactoe.Game {
	t.Helper()

	pos, err := tictactoe.NewPosition(position)
	require.NoError(t, err)

	move, err := tictactoe.NewMove(pos, marker)
	require.NoError(t, err)

	next, err := game.WithMove(move)
	require.NoError(t, err)

	return next
}

func testGameRepository(t *testing.T, newRepo func(t *testing.T) (context.Context, GameRepository)) {
	t.Run("Create starts a new game at version 1", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// When: a game is created
		record, err := repo.Create(ctx)

		// Then: it is empty and can be read back
		require.NoError(t, err)
		assert.NotEmpty(t, record.ID)
		assert.Equal(t, int64(1), record.Version)
		assert.True(t, tictactoe.Equal(tictactoe.NewGame(), record.Game))

		stored, err := repo.GetByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, record.ID, stored.ID)
		assert.Equal(t, int64(1), stored.Version)
		assert.True(t, tictactoe.Equal(record.Game, stored.Game))
	})

	t.Run("GetByID returns ErrGameNotFound for unknown ids", func(t *testing.T) {
		ctx, repo := newRepo(t)

		record, err := repo.GetByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, record)
	})

	t.Run("Update stores the game and bumps the version", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a stored game and a move applied to it
		record, err := repo.Create(ctx)
		require.NoError(t, err)
		game := mustPlay(t, record.Game, 4, tictactoe.X)

		// When: the game is written back at the version it was read
		updated, err := repo.Update(ctx, record.ID, game, record.Version)

		// Then: the new version holds the move
		require.NoError(t, err)
		assert.Equal(t, int64(2), updated.Version)

		stored, err := repo.GetByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stored.Version)
		assert.True(t, tictactoe.Equal(game, stored.Game))
		assert.Equal(t, tictactoe.Taken(tictactoe.X), stored.Game.Board().At(4))
	})

	t.Run("Update with a stale version returns ErrConcurrencyConflict", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a game that was updated after it was read
		record, err := repo.Create(ctx)
		require.NoError(t, err)

		_, err = repo.Update(ctx, record.ID, mustPlay(t, record.Game, 0, tictactoe.X), record.Version)
		require.NoError(t, err)

		// When: the stale reader writes with the old version
		_, err = repo.Update(ctx, record.ID, mustPlay(t, record.Game, 8, tictactoe.X), record.Version)

		// Then: the write is rejected and the first one survives
		require.ErrorIs(t, err, apperror.ErrConcurrencyConflict)

		stored, err := repo.GetByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, tictactoe.Taken(tictactoe.X), stored.Game.Board().At(0))
		assert.True(t, stored.Game.Board().At(8).IsAvailable())
	})

	t.Run("Concurrent updates at the same version have a single winner", func(t *testing.T) {
		ctx, repo := newRepo(t)

		record, err := repo.Create(ctx)
		require.NoError(t, err)

		const writers = 8

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
		)

		for i := 0; i < writers; i++ {
			game := mustPlay(t, record.Game, i, tictactoe.X)

			wg.Add(1)
			go func() {
				defer wg.Done()

				_, err := repo.Update(ctx, record.ID, game, record.Version)
				if err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
					return
				}
				assert.ErrorIs(t, err, apperror.ErrConcurrencyConflict)
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, succeeded)

		stored, err := repo.GetByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stored.Version)
		assert.Len(t, stored.Game.Moves(), 1)
	})

	t.Run("Update of an unknown game returns ErrGameNotFound", func(t *testing.T) {
		ctx, repo := newRepo(t)

		_, err := repo.Update(ctx, "9999999", tictactoe.NewGame(), 1)

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Finished games survive a round trip", func(t *testing.T) {
		ctx, repo := newRepo(t)

		record, err := repo.Create(ctx)
		require.NoError(t, err)

		game := record.Game
		for i, position := range []int{0, 3, 1, 4, 2} {
			marker := tictactoe.X
			if i%2 == 1 {
				marker = tictactoe.O
			}
			game = mustPlay(t, game, position, marker)
		}

		_, err = repo.Update(ctx, record.ID, game, record.Version)
		require.NoError(t, err)

		stored, err := repo.GetByID(ctx, record.ID)
		require.NoError(t, err)

		winner, ok := stored.Game.Winner()
		require.True(t, ok)
		assert.Equal(t, tictactoe.X, winner)
		assert.True(t, tictactoe.Equal(game, stored.Game))
	})

	t.Run("List returns every game in creation order", func(t *testing.T) {
		ctx, repo := newRepo(t)

		first, err := repo.Create(ctx)
		require.NoError(t, err)
		second, err := repo.Create(ctx)
		require.NoError(t, err)

		records, err := repo.List(ctx)

		require.NoError(t, err)
		require.Len(t, records, 2)

		ids := []string{records[0].ID, records[1].ID}
		assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)
		assert.False(t, records[1].CreatedAt.Before(records[0].CreatedAt))
	})

	t.Run("DeleteByID removes the game", func(t *testing.T) {
		ctx, repo := newRepo(t)

		record, err := repo.Create(ctx)
		require.NoError(t, err)

		// When: the game is deleted
		err = repo.DeleteByID(ctx, record.ID)

		// Then: it is gone from reads and listings
		require.NoError(t, err)

		_, err = repo.GetByID(ctx, record.ID)
		require.ErrorIs(t, err, apperror.ErrGameNotFound)

		records, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("DeleteByID of an unknown game returns ErrGameNotFound", func(t *testing.T) {
		ctx, repo := newRepo(t)

		err := repo.DeleteByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func testPlayerRepository(t *testing.T, newRepo func(t *testing.T) (context.Context, PlayerRepository)) {
	t.Run("CreateOrUpdate then GetByID returns the player", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a stored player
		player := entity.NewPlayer("alice")
		require.NoError(t, repo.CreateOrUpdate(ctx, player))

		// When: stats change and the player is saved again
		player.RecordResult(true)
		require.NoError(t, repo.CreateOrUpdate(ctx, player))

		// Then: the latest state is returned
		stored, err := repo.GetByID(ctx, player.ID)
		require.NoError(t, err)
		assert.Equal(t, player.ID, stored.ID)
		assert.Equal(t, "alice", stored.Name)
		assert.Equal(t, 1, stored.GamesPlayed)
		assert.Equal(t, 1, stored.GamesWon)
		assert.True(t, player.CreatedAt.Equal(stored.CreatedAt))
	})

	t.Run("GetByID returns ErrPlayerNotFound for unknown ids", func(t *testing.T) {
		ctx, repo := newRepo(t)

		player, err := repo.GetByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrPlayerNotFound)
		assert.Nil(t, player)
	})

	t.Run("Update applies the mutation to the stored player", func(t *testing.T) {
		ctx, repo := newRepo(t)

		player := entity.NewPlayer("bob")
		require.NoError(t, repo.CreateOrUpdate(ctx, player))

		updated, err := repo.Update(ctx, player.ID, func(stored *entity.Player) {
			stored.RecordResult(false)
		})

		require.NoError(t, err)
		assert.Equal(t, 1, updated.GamesPlayed)

		stored, err := repo.GetByID(ctx, player.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.GamesPlayed)
		assert.Equal(t, 0, stored.GamesWon)
	})

	t.Run("Update returns ErrPlayerNotFound for unknown ids", func(t *testing.T) {
		ctx, repo := newRepo(t)

		called := false
		player, err := repo.Update(ctx, "9999999", func(*entity.Player) { called = true })

		require.ErrorIs(t, err, apperror.ErrPlayerNotFound)
		assert.Nil(t, player)
		assert.False(t, called)
	})

	t.Run("Concurrent updates are not lost", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: a stored player
		player := entity.NewPlayer("carol")
		require.NoError(t, repo.CreateOrUpdate(ctx, player))

		// When: a few results are recorded at once
		const results = 4

		var wg sync.WaitGroup
		errs := make(chan error, results)
		for i := 0; i < results; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Update(ctx, player.ID, func(stored *entity.Player) {
					stored.RecordResult(true)
				})
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		// Then: every update that succeeded is counted
		succeeded := 0
		for err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			require.ErrorIs(t, err, apperror.ErrConcurrencyConflict)
		}

		stored, err := repo.GetByID(ctx, player.ID)
		require.NoError(t, err)
		assert.Positive(t, succeeded)
		assert.Equal(t, succeeded, stored.GamesPlayed)
		assert.Equal(t, succeeded, stored.GamesWon)
	})
}

func testAssignmentRepository(t *testing.T, newRepo func(t *testing.T) (context.Context, AssignmentRepository)) {
	t.Run("Assign records both players", func(t *testing.T) {
		ctx, repo := newRepo(t)

		require.NoError(t, repo.Assign(ctx, "g1", "p1", tictactoe.X))
		require.NoError(t, repo.Assign(ctx, "g1", "p2", tictactoe.O))

		assignment, err := repo.Get(ctx, "g1")

		require.NoError(t, err)
		assert.True(t, assignment.IsFull())
		assert.Equal(t, "p1", assignment.Players[tictactoe.X])
		assert.Equal(t, "p2", assignment.Players[tictactoe.O])
	})

	t.Run("Assign rejects a marker held by another player", func(t *testing.T) {
		ctx, repo := newRepo(t)
		require.NoError(t, repo.Assign(ctx, "g1", "p1", tictactoe.X))

		err := repo.Assign(ctx, "g1", "p2", tictactoe.X)

		require.ErrorIs(t, err, apperror.ErrMarkerTaken)
	})

	t.Run("Assign rejects a second marker for the same player", func(t *testing.T) {
		ctx, repo := newRepo(t)
		require.NoError(t, repo.Assign(ctx, "g1", "p1", tictactoe.X))

		err := repo.Assign(ctx, "g1", "p1", tictactoe.O)

		require.ErrorIs(t, err, apperror.ErrAlreadyAssigned)
	})

	t.Run("Assign of the same pair is a no-op", func(t *testing.T) {
		ctx, repo := newRepo(t)
		require.NoError(t, repo.Assign(ctx, "g1", "p1", tictactoe.X))

		require.NoError(t, repo.Assign(ctx, "g1", "p1", tictactoe.X))

		assignment, err := repo.Get(ctx, "g1")
		require.NoError(t, err)
		assert.Len(t, assignment.Players, 1)
	})

	t.Run("Get of an unknown game is empty and DeleteByGameID clears it", func(t *testing.T) {
		ctx, repo := newRepo(t)

		assignment, err := repo.Get(ctx, "g2")
		require.NoError(t, err)
		assert.Empty(t, assignment.Players)

		require.NoError(t, repo.Assign(ctx, "g2", "p1", tictactoe.X))
		require.NoError(t, repo.DeleteByGameID(ctx, "g2"))

		assignment, err = repo.Get(ctx, "g2")
		require.NoError(t, err)
		assert.Empty(t, assignment.Players)
	})
}

func testAccountRepository(t *testing.T, newRepo func(t *testing.T) (context.Context, AccountRepository)) {
	t.Run("Save then Find returns the account", func(t *testing.T) {
		ctx, repo := newRepo(t)

		account := &entity.Account{
			Email:        "alice@example.com",
			PlayerID:     "p1",
			PasswordHash: "hash",
			CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, repo.Save(ctx, account))

		stored, err := repo.Find(ctx, "alice@example.com")

		require.NoError(t, err)
		assert.Equal(t, "p1", stored.PlayerID)
		assert.Equal(t, "hash", stored.PasswordHash)
		assert.True(t, account.CreatedAt.Equal(stored.CreatedAt))
	})

	t.Run("Save refuses a taken email", func(t *testing.T) {
		ctx, repo := newRepo(t)

		// Given: alice@example.com belongs to p1
		require.NoError(t, repo.Save(ctx, &entity.Account{Email: "alice@example.com", PlayerID: "p1"}))

		// When: another player registers the same email
		err := repo.Save(ctx, &entity.Account{Email: "alice@example.com", PlayerID: "p2"})

		// Then: the first account is kept
		require.ErrorIs(t, err, apperror.ErrEmailTaken)

		stored, err := repo.Find(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "p1", stored.PlayerID)
	})

	t.Run("Find returns ErrAccountNotFound for unknown emails", func(t *testing.T) {
		ctx, repo := newRepo(t)

		account, err := repo.Find(ctx, "nobody@example.com")

		require.ErrorIs(t, err, apperror.ErrAccountNotFound)
		assert.Nil(t, account)
	})

	t.Run("Delete frees the email", func(t *testing.T) {
		ctx, repo := newRepo(t)

		require.NoError(t, repo.Save(ctx, &entity.Account{Email: "alice@example.com", PlayerID: "p1"}))
		require.NoError(t, repo.Delete(ctx, "alice@example.com"))

		_, err := repo.Find(ctx, "alice@example.com")
		require.ErrorIs(t, err, apperror.ErrAccountNotFound)

		require.NoError(t, repo.Save(ctx, &entity.Account{Email: "alice@example.com", PlayerID: "p2"}))
	})
}
