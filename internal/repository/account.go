package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

type AccountRepository interface {
	// Save stores a new account; an existing email gives ErrEmailTaken.
	Save(ctx context.Context, account *entity.Account) error
	Find(ctx context.Context, email string) (*entity.Account, error)
	Delete(ctx context.Context, email string) error
}

type dbAccount struct {
	client *redis.Client
}

func NewAccountRepository(client *redis.Client) AccountRepository {
	return &dbAccount{
		client: client,
	}
}

func accountKey(email string) string {
	return "account:" + email
}

func (that *dbAccount) Save(ctx context.Context, account *entity.Account) error {
	accountJSON, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}

	created, err := that.client.SetNX(ctx, accountKey(account.Email), accountJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("can't save account: %w", err)
	}

	if !created {
		return apperror.ErrEmailTaken
	}

	return nil
}

func (that *dbAccount) Find(ctx context.Context, email string) (*entity.Account, error) {
	response, err := that.client.Get(ctx, accountKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrAccountNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("can't find account: %w", err)
	}

	var account entity.Account
	if err = json.Unmarshal([]byte(response), &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return &account, nil
}

func (that *dbAccount) Delete(ctx context.Context, email string) error {
	if err := that.client.Del(ctx, accountKey(email)).Err(); err != nil {
		return fmt.Errorf("can't delete account: %w", err)
	}

	return nil
}
