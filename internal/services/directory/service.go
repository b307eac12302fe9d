package directory

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/erppro/identity/internal/dependencies/clock"
	"github.com/erppro/identity/internal/model"
	"github.com/erppro/identity/internal/storage"
)

// Service owns the account directory: lookups and uniqueness-enforcing
// inserts over the underlying store
type Service struct {
	store  storage.AccountStore
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new directory service
func New(store storage.AccountStore, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		clock:  clk,
		logger: logger.With(slog.String("component", "directory")),
	}
}

// FindByEmail looks up an account by email, case-insensitively
func (s *Service) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	return s.store.GetAccountByEmail(ctx, email)
}

// FindByEmailAndSecret looks up an account by case-insensitive email and
// byte-exact credential secret. Used only by login; a wrong secret is
// indistinguishable from a missing account.
func (s *Service) FindByEmailAndSecret(ctx context.Context, email, secret string) (*model.Account, error) {
	account, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(account.CredentialSecret), []byte(secret)) != 1 {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

// Insert stores a new account. The store guarantees the duplicate-email
// check and the write happen atomically.
func (s *Service) Insert(ctx context.Context, account *model.Account) (*model.Account, error) {
	if err := s.store.InsertAccount(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account created",
		slog.String("account_id", string(account.ID)),
		slog.String("role", string(account.Role)))
	return account, nil
}

// Count returns the number of accounts in the directory
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.CountAccounts(ctx)
}

// Seed inserts the fixed demonstration accounts. Seeding is idempotent:
// an already-present email is skipped, not an error.
func (s *Service) Seed(ctx context.Context) error {
	for _, account := range seedAccounts(s.clock.Now()) {
		_, err := s.Insert(ctx, account)
		if err != nil && !errors.Is(err, model.ErrEmailExists) {
			return err
		}
	}
	return nil
}

// seedAccounts returns the demo accounts available without registration.
// They are ordinary accounts and satisfy every directory invariant.
func seedAccounts(now time.Time) []*model.Account {
	return []*model.Account{
		{
			ID:               "1",
			Username:         "admin_erp",
			DisplayName:      "Admin ERP",
			Email:            "admin@erp.com",
			PhoneDigits:      "5512340001",
			BirthDate:        time.Date(1985, time.March, 2, 0, 0, 0, 0, time.UTC),
			Address:          "Av. Reforma 123, Col. Centro, CDMX",
			CredentialSecret: "Admin@Secure1",
			Role:             model.RoleAdmin,
			CreatedAt:        now,
		},
		{
			ID:               "2",
			Username:         "cesar_ramirez",
			DisplayName:      "César Ramírez",
			Email:            "cesar@erp.com",
			PhoneDigits:      "5512340002",
			BirthDate:        time.Date(1992, time.July, 19, 0, 0, 0, 0, time.UTC),
			Address:          "Calle Hidalgo 45, Col. Roma, CDMX",
			CredentialSecret: "Cesar@Secure1",
			Role:             model.RoleUser,
			CreatedAt:        now,
		},
	}
}
