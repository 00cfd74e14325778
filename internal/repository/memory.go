package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

// memGame keeps games in process memory. Records are copied on the way in and
// out; the tictactoe.Game values inside are immutable and shared.
type memGame struct {
	mu    sync.RWMutex
	games map[string]entity.GameRecord
}

func NewMemoryGameRepository() GameRepository {
	return &memGame{
		games: make(map[string]entity.GameRecord),
	}
}

func (that *memGame) Create(_ context.Context) (*entity.GameRecord, error) {
	record := newGameRecord()

	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[record.ID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrGameIDCollision, record.ID)
	}
	that.games[record.ID] = *record

	return record, nil
}

func (that *memGame) GetByID(_ context.Context, id string) (*entity.GameRecord, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	record, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return &record, nil
}

func (that *memGame) List(_ context.Context) ([]*entity.GameRecord, error) {
	that.mu.RLock()
	records := make([]*entity.GameRecord, 0, len(that.games))
	for _, record := range that.games {
		record := record
		records = append(records, &record)
	}
	that.mu.RUnlock()

	sortRecords(records)

	return records, nil
}

func (that *memGame) Update(_ context.Context, id string, game tictactoe.Game, expectedVersion int64) (*entity.GameRecord, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	current, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	if current.Version != expectedVersion {
		return nil, fmt.Errorf("%w: game %s is at version %d, expected %d",
			apperror.ErrConcurrencyConflict, id, current.Version, expectedVersion)
	}

	current.Version++
	current.Game = game
	that.games[id] = current

	return &current, nil
}

func (that *memGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return apperror.ErrGameNotFound
	}
	delete(that.games, id)

	return nil
}

type memPlayer struct {
	mu      sync.RWMutex
	players map[string]entity.Player
}

func NewMemoryPlayerRepository() PlayerRepository {
	return &memPlayer{
		players: make(map[string]entity.Player),
	}
}

func (that *memPlayer) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	that.mu.Lock()
	that.players[player.ID] = *player
	that.mu.Unlock()

	return nil
}

func (that *memPlayer) GetByID(_ context.Context, id string) (*entity.Player, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	player, ok := that.players[id]
	if !ok {
		return nil, apperror.ErrPlayerNotFound
	}

	return &player, nil
}

func (that *memPlayer) Update(_ context.Context, id string, mutate func(player *entity.Player)) (*entity.Player, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, ok := that.players[id]
	if !ok {
		return nil, apperror.ErrPlayerNotFound
	}

	mutate(&player)
	that.players[id] = player

	return &player, nil
}

type memAssignment struct {
	mu          sync.Mutex
	assignments map[string]map[tictactoe.Marker]string
}

func NewMemoryAssignmentRepository() AssignmentRepository {
	return &memAssignment{
		assignments: make(map[string]map[tictactoe.Marker]string),
	}
}

func (that *memAssignment) Assign(_ context.Context, gameID, playerID string, marker tictactoe.Marker) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	assignment := that.load(gameID)
	if err := assignment.Assign(playerID, marker); err != nil {
		return err
	}
	that.assignments[gameID] = assignment.Players

	return nil
}

func (that *memAssignment) Get(_ context.Context, gameID string) (*entity.Assignment, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.load(gameID), nil
}

func (that *memAssignment) DeleteByGameID(_ context.Context, gameID string) error {
	that.mu.Lock()
	delete(that.assignments, gameID)
	that.mu.Unlock()

	return nil
}

// load returns a copy; callers hold the lock.
func (that *memAssignment) load(gameID string) *entity.Assignment {
	assignment := entity.NewAssignment(gameID)
	for marker, playerID := range that.assignments[gameID] {
		assignment.Players[marker] = playerID
	}
	return assignment
}

type memAccount struct {
	mu       sync.RWMutex
	accounts map[string]entity.Account
}

func NewMemoryAccountRepository() AccountRepository {
	return &memAccount{
		accounts: make(map[string]entity.Account),
	}
}

func (that *memAccount) Save(_ context.Context, account *entity.Account) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.accounts[account.Email]; ok {
		return apperror.ErrEmailTaken
	}
	that.accounts[account.Email] = *account

	return nil
}

func (that *memAccount) Find(_ context.Context, email string) (*entity.Account, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	account, ok := that.accounts[email]
	if !ok {
		return nil, apperror.ErrAccountNotFound
	}

	return &account, nil
}

func (that *memAccount) Delete(_ context.Context, email string) error {
	that.mu.Lock()
	delete(that.accounts, email)
	that.mu.Unlock()

	return nil
}
