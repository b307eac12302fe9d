package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/erppro/identity/internal/model"
	"github.com/erppro/identity/internal/storage"
)

// Storage is an in-memory implementation of the account store.
// Accounts are keyed by lowercased email, which both enforces the
// case-insensitive uniqueness invariant and makes lookups O(1).
type Storage struct {
	mu       sync.RWMutex
	accounts map[string]*model.Account
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts: make(map[string]*model.Account),
	}
}

// Ensure Storage implements the interface
var _ storage.AccountStore = (*Storage)(nil)

// InsertAccount holds the write lock across the existence check and the
// append, so concurrent inserts for the same email serialize and exactly
// one succeeds.
func (s *Storage) InsertAccount(ctx context.Context, account *model.Account) error {
	key := emailKey(account.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[key]; ok {
		return model.ErrEmailExists
	}
	s.accounts[key] = account
	return nil
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[emailKey(email)]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

func (s *Storage) CountAccounts(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts), nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
