package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/erppro/identity/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) testAccount(email string) *model.Account {
	return &model.Account{
		ID:               "acct-1",
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
	account := s.testAccount("alice@example.com")

	err := s.storage.InsertAccount(s.ctx, account)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAccountByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(account.ID, retrieved.ID)
	s.Equal(account.Username, retrieved.Username)
	s.Equal(account.CredentialSecret, retrieved.CredentialSecret)
}

func (s *StorageSuite) TestGetAccountByEmailCaseInsensitive() {
	account := s.testAccount("alice@example.com")
	s.Require().NoError(s.storage.InsertAccount(s.ctx, account))

	retrieved, err := s.storage.GetAccountByEmail(s.ctx, "ALICE@Example.COM")
	s.Require().NoError(err)
	s.Equal(account.ID, retrieved.ID)

	retrieved, err = s.storage.GetAccountByEmail(s.ctx, "  alice@example.com  ")
	s.Require().NoError(err)
	s.Equal(account.ID, retrieved.ID)
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccountByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestInsertDuplicateEmail() {
	s.Require().NoError(s.storage.InsertAccount(s.ctx, s.testAccount("alice@example.com")))

	dup := s.testAccount("Alice@EXAMPLE.com")
	dup.ID = "acct-2"
	err := s.storage.InsertAccount(s.ctx, dup)
	s.ErrorIs(err, model.ErrEmailExists)

	count, err := s.storage.CountAccounts(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *StorageSuite) TestCountAccounts() {
	count, err := s.storage.CountAccounts(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	s.Require().NoError(s.storage.InsertAccount(s.ctx, s.testAccount("alice@example.com")))

	bob := s.testAccount("bob@example.com")
	bob.ID = "acct-2"
	s.Require().NoError(s.storage.InsertAccount(s.ctx, bob))

	count, err = s.storage.CountAccounts(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *StorageSuite) TestConcurrentInsertSameEmail() {
	const workers = 16

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.storage.InsertAccount(s.ctx, s.testAccount("race@example.com"))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			s.ErrorIs(err, model.ErrEmailExists)
		}
	}
	s.Equal(1, successes)

	count, err := s.storage.CountAccounts(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}
