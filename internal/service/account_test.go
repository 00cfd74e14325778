package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	mockedService "github.com/rocketscienceinc/tictactoe-web/mocks/service"
)

const strongPassword = "Correct-Horse1"

func newAccountService(accounts accountRepo, players playerRepo) *accountService {
	service := NewAccountService(discardLogger(), accounts, players).(*accountService)
	service.hashCost = bcrypt.MinCost
	return service
}

func storedPlayer(t *testing.T, players repository.PlayerRepository, name string) *entity.Player {
	t.Helper()

	player := entity.NewPlayer(name)
	require.NoError(t, players.CreateOrUpdate(context.Background(), player))

	return player
}

func TestAccountService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Anonymous player becomes a named one", func(t *testing.T) {
		// Given: an anonymous player with a game played
		players := repository.NewMemoryPlayerRepository()
		accounts := repository.NewMemoryAccountRepository()
		player := storedPlayer(t, players, "")
		_, err := players.Update(ctx, player.ID, func(stored *entity.Player) { stored.RecordResult(true) })
		require.NoError(t, err)

		// When: the player registers
		registered, err := newAccountService(accounts, players).Register(ctx, player.ID, Registration{
			Email:    " Alice@Example.com ",
			Name:     "Alice",
			Password: strongPassword,
		})

		// Then: id and stats are kept, the account points at the player
		require.NoError(t, err)
		assert.Equal(t, player.ID, registered.ID)
		assert.Equal(t, "Alice", registered.Name)
		assert.Equal(t, "alice@example.com", registered.Email)
		assert.Equal(t, 1, registered.GamesWon)

		account, err := accounts.Find(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, player.ID, account.PlayerID)
		assert.NotEqual(t, strongPassword, account.PasswordHash)
	})

	t.Run("Empty name keeps the generated one", func(t *testing.T) {
		players := repository.NewMemoryPlayerRepository()
		player := storedPlayer(t, players, "")

		registered, err := newAccountService(repository.NewMemoryAccountRepository(), players).
			Register(ctx, player.ID, Registration{Email: "bob@example.com", Password: strongPassword})

		require.NoError(t, err)
		assert.Equal(t, player.Name, registered.Name)
	})

	t.Run("Taken email is refused", func(t *testing.T) {
		// Given: alice@example.com belongs to another player
		players := repository.NewMemoryPlayerRepository()
		accounts := repository.NewMemoryAccountRepository()
		service := newAccountService(accounts, players)

		first := storedPlayer(t, players, "")
		_, err := service.Register(ctx, first.ID, Registration{Email: "alice@example.com", Password: strongPassword})
		require.NoError(t, err)

		// When: a second player registers the same email
		second := storedPlayer(t, players, "")
		_, err = service.Register(ctx, second.ID, Registration{Email: "ALICE@example.com", Password: strongPassword})

		// Then: the second player stays anonymous
		require.ErrorIs(t, err, apperror.ErrEmailTaken)

		stored, err := players.GetByID(ctx, second.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsRegistered())
	})

	t.Run("Registered players cannot register again", func(t *testing.T) {
		players := repository.NewMemoryPlayerRepository()
		accounts := repository.NewMemoryAccountRepository()
		service := newAccountService(accounts, players)

		player := storedPlayer(t, players, "")
		_, err := service.Register(ctx, player.ID, Registration{Email: "alice@example.com", Password: strongPassword})
		require.NoError(t, err)

		_, err = service.Register(ctx, player.ID, Registration{Email: "other@example.com", Password: strongPassword})

		require.ErrorIs(t, err, apperror.ErrAlreadyRegistered)
		_, err = accounts.Find(ctx, "other@example.com")
		require.ErrorIs(t, err, apperror.ErrAccountNotFound)
	})

	t.Run("Account is released when the player update fails", func(t *testing.T) {
		// Given: a player repository that fails on update
		player := &entity.Player{ID: "p1"}
		errStorage := errors.New("storage down")

		mockPlayerRepo := mockedService.NewMockplayerRepo(t)
		mockPlayerRepo.EXPECT().GetByID(mock.Anything, "p1").Return(player, nil).Once()
		mockPlayerRepo.EXPECT().Update(mock.Anything, "p1", mock.Anything).Return(nil, errStorage).Once()

		mockAccountRepo := mockedService.NewMockaccountRepo(t)
		mockAccountRepo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*entity.Account")).Return(nil).Once()
		mockAccountRepo.EXPECT().Delete(mock.Anything, "alice@example.com").Return(nil).Once()

		// When: the player registers
		_, err := newAccountService(mockAccountRepo, mockPlayerRepo).
			Register(ctx, "p1", Registration{Email: "alice@example.com", Password: strongPassword})

		// Then: the error is returned and the email is freed
		require.ErrorIs(t, err, errStorage)
	})

	t.Run("Invalid input is rejected before touching storage", func(t *testing.T) {
		mockPlayerRepo := mockedService.NewMockplayerRepo(t)
		mockAccountRepo := mockedService.NewMockaccountRepo(t)
		service := newAccountService(mockAccountRepo, mockPlayerRepo)

		_, err := service.Register(ctx, "p1", Registration{Email: "not-an-email", Password: strongPassword})
		require.ErrorIs(t, err, apperror.ErrInvalidEmail)

		_, err = service.Register(ctx, "p1", Registration{Email: "alice@example.com", Password: "password"})
		require.ErrorIs(t, err, apperror.ErrWeakPassword)
	})
}

func TestAccountService_Login(t *testing.T) {
	ctx := context.Background()

	players := repository.NewMemoryPlayerRepository()
	accounts := repository.NewMemoryAccountRepository()
	service := newAccountService(accounts, players)

	player := storedPlayer(t, players, "")
	_, err := service.Register(ctx, player.ID, Registration{Email: "alice@example.com", Password: strongPassword})
	require.NoError(t, err)

	t.Run("Correct credentials return the player", func(t *testing.T) {
		loggedIn, err := service.Login(ctx, "Alice@example.com", strongPassword)

		require.NoError(t, err)
		assert.Equal(t, player.ID, loggedIn.ID)
		assert.Equal(t, "alice@example.com", loggedIn.Email)
	})

	t.Run("Wrong password is rejected", func(t *testing.T) {
		_, err := service.Login(ctx, "alice@example.com", "Wrong-Horse1")

		require.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	})

	t.Run("Unknown email looks the same as a wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, "nobody@example.com", strongPassword)

		require.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	})

	t.Run("Malformed email is rejected", func(t *testing.T) {
		_, err := service.Login(ctx, "alice", strongPassword)

		require.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	})
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"", false},
		{"Ab1!", false},
		{"alllower1!", false},
		{"ALLUPPER1!", false},
		{"NoDigits!!", false},
		{"NoGoodPassword1", false},
		{"NoGoodPassword1!", true},
		{"Test1234!@#$", true},
		{"Ünïcödé-Pass9", true},
		{"Aa1!" + string(make([]byte, MaxPasswordLength)), false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if tt.valid {
			assert.NoError(t, err, tt.password)
		} else {
			assert.ErrorIs(t, err, apperror.ErrWeakPassword, tt.password)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	email, err := NormalizeEmail("  Alice@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)

	for _, invalid := range []string{"", "alice", "Alice <alice@example.com>", "@example.com"} {
		_, err = NormalizeEmail(invalid)
		assert.ErrorIs(t, err, apperror.ErrInvalidEmail, invalid)
	}
}
