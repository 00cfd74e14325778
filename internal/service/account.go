package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const (
	MinPasswordLength = 8
	// MaxPasswordLength - bcrypt only looks at the first 72 bytes.
	MaxPasswordLength = 72
)

// Registration - what a player submits to claim an account.
type Registration struct {
	Email    string
	Name     string
	Password string
}

type AccountService interface {
	Register(ctx context.Context, playerID string, registration Registration) (*entity.Player, error)
	Login(ctx context.Context, email, password string) (*entity.Player, error)
}

type accountRepo interface {
	Save(ctx context.Context, account *entity.Account) error
	Find(ctx context.Context, email string) (*entity.Account, error)
	Delete(ctx context.Context, email string) error
}

type accountService struct {
	logger      *slog.Logger
	accountRepo accountRepo
	playerRepo  playerRepo
	hashCost    int
}

func NewAccountService(logger *slog.Logger, accountRepo accountRepo, playerRepo playerRepo) AccountService {
	return &accountService{
		logger:      logger.With("component", "accounts"),
		accountRepo: accountRepo,
		playerRepo:  playerRepo,
		hashCost:    bcrypt.DefaultCost,
	}
}

// Register - turns the anonymous player into a named one. The player keeps its
// id, so games and stats carry over.
func (that *accountService) Register(ctx context.Context, playerID string, registration Registration) (*entity.Player, error) {
	log := that.logger.With("method", "Register", "playerID", playerID)

	email, err := NormalizeEmail(registration.Email)
	if err != nil {
		return nil, err
	}

	if err = ValidatePassword(registration.Password); err != nil {
		return nil, err
	}

	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("could not get player: %w", err)
	}

	if player.IsRegistered() {
		return nil, apperror.ErrAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(registration.Password), that.hashCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	account := &entity.Account{
		Email:        email,
		PlayerID:     playerID,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err = that.accountRepo.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("could not save account: %w", err)
	}

	name := strings.TrimSpace(registration.Name)

	updated, err := that.playerRepo.Update(ctx, playerID, func(stored *entity.Player) {
		if stored.IsRegistered() {
			return
		}

		stored.Email = email
		if name != "" {
			stored.Name = name
		}
	})
	if err == nil && updated.Email != email {
		// a concurrent registration claimed the player first
		err = apperror.ErrAlreadyRegistered
	}

	if err != nil {
		if deleteErr := that.accountRepo.Delete(ctx, email); deleteErr != nil {
			log.Error("failed to release account", "email", email, "error", deleteErr)
		}
		return nil, fmt.Errorf("could not register player: %w", err)
	}

	log.Info("player registered", "email", email)

	return updated, nil
}

// Login - returns the player owning the account. Unknown emails and wrong
// passwords give the same error.
func (that *accountService) Login(ctx context.Context, email, password string) (*entity.Player, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	account, err := that.accountRepo.Find(ctx, email)
	if errors.Is(err, apperror.ErrAccountNotFound) {
		return nil, apperror.ErrInvalidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("could not get account by email: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	player, err := that.playerRepo.GetByID(ctx, account.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("could not get player: %w", err)
	}

	return player, nil
}

// NormalizeEmail - validates a bare address and lower-cases it.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)

	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidEmail, email)
	}

	return strings.ToLower(address.Address), nil
}

// ValidatePassword - at least one upper case letter, lower case letter, digit
// and symbol, within the length limits.
func ValidatePassword(password string) error {
	switch {
	case len([]rune(password)) < MinPasswordLength:
		return fmt.Errorf("%w: must be at least %d characters long", apperror.ErrWeakPassword, MinPasswordLength)
	case len(password) > MaxPasswordLength:
		return fmt.Errorf("%w: must not exceed %d bytes", apperror.ErrWeakPassword, MaxPasswordLength)
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r):
			special = true
		}
	}

	switch {
	case !upper:
		return fmt.Errorf("%w: must contain an upper case letter", apperror.ErrWeakPassword)
	case !lower:
		return fmt.Errorf("%w: must contain a lower case letter", apperror.ErrWeakPassword)
	case !digit:
		return fmt.Errorf("%w: must contain a number", apperror.ErrWeakPassword)
	case !special:
		return fmt.Errorf("%w: must contain a special character", apperror.ErrWeakPassword)
	}

	return nil
}
