package repository

import (
	"context"
	"os"
	"testing"

	"github.com/rocketscienceinc/tictactoe-web/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	code := m.Run()
	suite.Purge()
	os.Exit(code)
}

func TestGameRepository(t *testing.T) {
	testGameRepository(t, func(t *testing.T) (context.Context, GameRepository) {
		ctx, st := suite.New(t)
		return ctx, NewGameRepository(st.Storage)
	})
}

func TestGameRepository_CorruptHistory(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a stored history where O moves first
	corrupt := `{"version":1,"moves":[{"position":0,"marker":"O","timestamp":"2024-01-01T00:00:00Z"}]}`
	require.NoError(t, st.Storage.Set(ctx, gameKey("broken"), corrupt, 0).Err())

	// When: the game is read
	record, err := gameRepo.GetByID(ctx, "broken")

	// Then: the replay rejects it
	require.Error(t, err)
	assert.Nil(t, record)
	assert.Contains(t, err.Error(), "corrupt")
}

func TestPlayerRepository(t *testing.T) {
	testPlayerRepository(t, func(t *testing.T) (context.Context, PlayerRepository) {
		ctx, st := suite.New(t)
		return ctx, NewPlayerRepository(st.Storage)
	})
}

func TestAssignmentRepository(t *testing.T) {
	testAssignmentRepository(t, func(t *testing.T) (context.Context, AssignmentRepository) {
		ctx, st := suite.New(t)
		return ctx, NewAssignmentRepository(st.Storage)
	})
}

func TestAccountRepository(t *testing.T) {
	testAccountRepository(t, func(t *testing.T) (context.Context, AccountRepository) {
		ctx, st := suite.New(t)
		return ctx, NewAccountRepository(st.Storage)
	})
}
