package storage

import (
	"context"

	"github.com/erppro/identity/internal/model"
)

// AccountStore defines the interface for account persistence.
//
// Email lookups are case-insensitive. InsertAccount must perform its
// duplicate-email check and the write as one atomic step: two concurrent
// inserts for the same email must never both succeed.
type AccountStore interface {
	// InsertAccount stores a new account, failing with model.ErrEmailExists
	// if an account with the same email (case-insensitive) already exists
	InsertAccount(ctx context.Context, account *model.Account) error

	// GetAccountByEmail returns the account for an email, or
	// model.ErrAccountNotFound
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)

	// CountAccounts returns the number of stored accounts
	CountAccounts(ctx context.Context) (int, error)
}
