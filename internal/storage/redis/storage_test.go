package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/erppro/identity/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) testAccount(id model.AccountID, email string) *model.Account {
	return &model.Account{
		ID:               id,
		Username:         "alice",
		DisplayName:      "Alice Example",
		Email:            email,
		PhoneDigits:      "5512345678",
		BirthDate:        time.Date(1990, time.March, 1, 0, 0, 0, 0, time.UTC),
		Address:          "Av. Reforma 123, CDMX",
		CredentialSecret: "Alice@Secure1",
		Role:             model.RoleUser,
	}
}

func (s *StorageSuite) TestInsertAndGetAccount() {
	account := s.testAccount("acct-1", "alice@example.com")

	err := s.storage.InsertAccount(s.ctx, account)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAccountByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(account.ID, retrieved.ID)
	s.Equal(account.Username, retrieved.Username)
	s.Equal(account.CredentialSecret, retrieved.CredentialSecret)
	s.True(account.BirthDate.Equal(retrieved.BirthDate))
}

func (s *StorageSuite) TestGetAccountByEmailCaseInsensitive() {
	account := s.testAccount("acct-1", "alice@example.com")
	s.Require().NoError(s.storage.InsertAccount(s.ctx, account))

	retrieved, err := s.storage.GetAccountByEmail(s.ctx, "ALICE@Example.COM")
	s.Require().NoError(err)
	s.Equal(account.ID, retrieved.ID)
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccountByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestInsertDuplicateEmail() {
	s.Require().NoError(s.storage.InsertAccount(s.ctx, s.testAccount("acct-1", "alice@example.com")))

	err := s.storage.InsertAccount(s.ctx, s.testAccount("acct-2", "Alice@EXAMPLE.com"))
	s.ErrorIs(err, model.ErrEmailExists)

	count, err := s.storage.CountAccounts(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *StorageSuite) TestCountAccounts() {
	count, err := s.storage.CountAccounts(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	s.Require().NoError(s.storage.InsertAccount(s.ctx, s.testAccount("acct-1", "alice@example.com")))
	s.Require().NoError(s.storage.InsertAccount(s.ctx, s.testAccount("acct-2", "bob@example.com")))

	count, err = s.storage.CountAccounts(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}
