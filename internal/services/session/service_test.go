package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/erppro/identity/internal/dependencies/mocks"
	"github.com/erppro/identity/internal/model"
	"github.com/erppro/identity/internal/services/directory"
	"github.com/erppro/identity/internal/storage/memory"
	"github.com/erppro/identity/internal/testutil"
)

type SessionSuite struct {
	suite.Suite
	service   *Service
	directory *directory.Service
	clock     *mocks.MockClock
	random    *mocks.MockRandom
	ctx       context.Context
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.directory = directory.New(memory.New(), s.clock, testutil.NopLogger())
	s.Require().NoError(s.directory.Seed(context.Background()))
	s.service = New(s.directory, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *SessionSuite) validRegistration() model.Registration {
	return model.Registration{
		Username:        "maria_lopez",
		Name:            "María López",
		Email:           "maria@example.com",
		Password:        "Maria@Secure1",
		ConfirmPassword: "Maria@Secure1",
		Phone:           "5512345678",
		BirthDate:       time.Date(1995, time.April, 3, 0, 0, 0, 0, time.UTC),
		Address:         "Calle Juárez 10, Col. Centro",
	}
}

// Login

func (s *SessionSuite) TestInitialStateIsAnonymous() {
	state := s.service.State()
	s.False(state.Authenticated)
	s.Nil(state.Account)
	s.Empty(state.Token)
}

func (s *SessionSuite) TestLoginSuccess() {
	account, err := s.service.Login(s.ctx, "admin@erp.com", "Admin@Secure1")
	s.Require().NoError(err)
	s.Equal("admin_erp", account.Username)
	s.Equal(model.RoleAdmin, account.Role)

	state := s.service.State()
	s.True(state.Authenticated)
	s.Require().NotNil(state.Account)
	s.Equal("admin@erp.com", state.Account.Email)
	s.NotEmpty(state.Token)
}

func (s *SessionSuite) TestLoginEmailCaseInsensitive() {
	_, err := s.service.Login(s.ctx, "ADMIN@Erp.Com", "Admin@Secure1")
	s.Require().NoError(err)
	s.True(s.service.State().Authenticated)
}

func (s *SessionSuite) TestLoginWrongPassword() {
	_, err := s.service.Login(s.ctx, "admin@erp.com", "nope")
	s.ErrorIs(err, model.ErrInvalidCredentials)
	s.False(s.service.State().Authenticated)
}

func (s *SessionSuite) TestLoginUnknownEmail() {
	_, err := s.service.Login(s.ctx, "nobody@erp.com", "Admin@Secure1")
	s.ErrorIs(err, model.ErrInvalidCredentials)
	s.False(s.service.State().Authenticated)
}

func (s *SessionSuite) TestFailedLoginPreservesExistingSession() {
	_, err := s.service.Login(s.ctx, "admin@erp.com", "Admin@Secure1")
	s.Require().NoError(err)
	before := s.service.State()

	_, err = s.service.Login(s.ctx, "cesar@erp.com", "wrong")
	s.ErrorIs(err, model.ErrInvalidCredentials)

	after := s.service.State()
	s.True(after.Authenticated)
	s.Equal(before.Token, after.Token)
	s.Equal(before.Account.ID, after.Account.ID)
}

func (s *SessionSuite) TestLoginReplacesCurrentSession() {
	_, err := s.service.Login(s.ctx, "admin@erp.com", "Admin@Secure1")
	s.Require().NoError(err)
	first := s.service.State()

	_, err = s.service.Login(s.ctx, "cesar@erp.com", "Cesar@Secure1")
	s.Require().NoError(err)
	second := s.service.State()

	s.Equal("cesar_ramirez", second.Account.Username)
	s.NotEqual(first.Token, second.Token)
}

// Register

func (s *SessionSuite) TestRegisterSuccess() {
	account, err := s.service.Register(s.ctx, s.validRegistration())
	s.Require().NoError(err)
	s.Equal("maria_lopez", account.Username)
	s.Equal(model.RoleUser, account.Role)
	s.NotEmpty(account.ID)

	state := s.service.State()
	s.True(state.Authenticated)
	s.NotEmpty(state.Token)

	count, err := s.directory.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, count)
}

func (s *SessionSuite) TestRegisterStoresLowercasedEmail() {
	reg := s.validRegistration()
	reg.Email = "  Maria@Example.COM  "

	account, err := s.service.Register(s.ctx, reg)
	s.Require().NoError(err)
	s.Equal("maria@example.com", account.Email)

	stored, err := s.directory.FindByEmail(s.ctx, "maria@example.com")
	s.Require().NoError(err)
	s.Equal("maria@example.com", stored.Email)
}

func (s *SessionSuite) TestRegisterThenLogin() {
	_, err := s.service.Register(s.ctx, s.validRegistration())
	s.Require().NoError(err)
	s.service.Logout()

	_, err = s.service.Login(s.ctx, "maria@example.com", "Maria@Secure1")
	s.Require().NoError(err)
	s.True(s.service.State().Authenticated)
}

func (s *SessionSuite) TestRegisterDuplicateEmail() {
	reg := s.validRegistration()
	reg.Email = "ADMIN@erp.com"

	_, err := s.service.Register(s.ctx, reg)
	s.ErrorIs(err, model.ErrEmailExists)
	s.False(s.service.State().Authenticated)

	count, err := s.directory.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *SessionSuite) TestRegisterValidationOrder() {
	// Every field invalid: the first rule in the fixed order wins
	broken := model.Registration{
		Username:        "ab",
		Name:            "x",
		Email:           "not-an-email",
		Password:        "weak",
		ConfirmPassword: "different",
		Phone:           "abc",
		BirthDate:       time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC),
		Address:         "short",
	}

	cases := []struct {
		fix  func(*model.Registration)
		want error
	}{
		{func(r *model.Registration) {}, model.ErrInvalidUsername},
		{func(r *model.Registration) { r.Username = "maria_lopez" }, model.ErrInvalidDisplayName},
		{func(r *model.Registration) { r.Name = "María López" }, model.ErrInvalidEmail},
		{func(r *model.Registration) { r.Email = "maria@example.com" }, model.ErrPasswordTooShort},
		{func(r *model.Registration) { r.Password = "Maria@Secure1" }, model.ErrPasswordMismatch},
		{func(r *model.Registration) { r.ConfirmPassword = "Maria@Secure1" }, model.ErrInvalidPhone},
		{func(r *model.Registration) { r.Phone = "5512345678" }, model.ErrUnderage},
		{func(r *model.Registration) {
			r.BirthDate = time.Date(1995, time.April, 3, 0, 0, 0, 0, time.UTC)
		}, model.ErrShortAddress},
	}

	reg := broken
	for _, c := range cases {
		c.fix(&reg)
		_, err := s.service.Register(s.ctx, reg)
		s.ErrorIs(err, c.want)
		s.False(s.service.State().Authenticated)
	}

	reg.Address = "Calle Juárez 10, Col. Centro"
	_, err := s.service.Register(s.ctx, reg)
	s.NoError(err)
}

func (s *SessionSuite) TestRegisterPasswordPolicyReasons() {
	cases := []struct {
		password string
		want     error
	}{
		{"Short@1", model.ErrPasswordTooShort},
		{"lowercase@123", model.ErrPasswordNoUppercase},
		{"NoDigitsHere@", model.ErrPasswordNoDigit},
		{"NoSpecial1234", model.ErrPasswordNoSpecial},
	}

	for _, c := range cases {
		reg := s.validRegistration()
		reg.Password = c.password
		reg.ConfirmPassword = c.password

		_, err := s.service.Register(s.ctx, reg)
		s.ErrorIs(err, c.want, "password %q", c.password)
	}
}

func (s *SessionSuite) TestRegisterAgeBoundary() {
	// Clock is frozen at 2025-06-15
	reg := s.validRegistration()
	reg.BirthDate = time.Date(2007, time.June, 15, 0, 0, 0, 0, time.UTC)
	_, err := s.service.Register(s.ctx, reg)
	s.NoError(err)

	reg = s.validRegistration()
	reg.Email = "younger@example.com"
	reg.BirthDate = time.Date(2007, time.June, 16, 0, 0, 0, 0, time.UTC)
	_, err = s.service.Register(s.ctx, reg)
	s.ErrorIs(err, model.ErrUnderage)
}

// Logout

func (s *SessionSuite) TestLogout() {
	_, err := s.service.Login(s.ctx, "admin@erp.com", "Admin@Secure1")
	s.Require().NoError(err)

	s.service.Logout()

	state := s.service.State()
	s.False(state.Authenticated)
	s.Nil(state.Account)
	s.Empty(state.Token)
}

func (s *SessionSuite) TestLogoutWhileAnonymous() {
	s.service.Logout()
	s.False(s.service.State().Authenticated)
}

// Subscriptions

func (s *SessionSuite) TestSubscribeReplaysCurrentState() {
	_, err := s.service.Login(s.ctx, "admin@erp.com", "Admin@Secure1")
	s.Require().NoError(err)

	var seen []model.SessionState
	s.service.Subscribe(func(state model.SessionState) {
		seen = append(seen, state)
	})

	s.Require().Len(seen, 1)
	s.True(seen[0].Authenticated)
	s.Equal("admin_erp", seen[0].Account.Username)
}

func (s *SessionSuite) TestSubscribersObserveTransitionsInOrder() {
	var seen []bool
	s.service.Subscribe(func(state model.SessionState) {
		seen = append(seen, state.Authenticated)
	})

	_, err := s.service.Login(s.ctx, "admin@erp.com", "Admin@Secure1")
	s.Require().NoError(err)
	s.service.Logout()
	_, err = s.service.Login(s.ctx, "cesar@erp.com", "Cesar@Secure1")
	s.Require().NoError(err)

	// Initial replay, then login, logout, login
	s.Equal([]bool{false, true, false, true}, seen)
}

func (s *SessionSuite) TestSubscribersNotifiedInRegistrationOrder() {
	var order []string
	s.service.Subscribe(func(model.SessionState) { order = append(order, "first") })
	s.service.Subscribe(func(model.SessionState) { order = append(order, "second") })
	order = nil

	s.service.Logout()
	s.Equal([]string{"first", "second"}, order)
}

func (s *SessionSuite) TestUnsubscribe() {
	calls := 0
	id := s.service.Subscribe(func(model.SessionState) { calls++ })
	s.Equal(1, calls)

	s.service.Unsubscribe(id)
	s.service.Logout()
	s.Equal(1, calls)

	// Unknown ids are a no-op
	s.service.Unsubscribe(999)
}

// Tokens

func (s *SessionSuite) TestTokensAreUniqueUnderFrozenClock() {
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		_, err := s.service.Login(s.ctx, "admin@erp.com", "Admin@Secure1")
		s.Require().NoError(err)

		token := s.service.State().Token
		s.False(seen[token], "token %q minted twice", token)
		seen[token] = true
	}
}

// Sanitization

func (s *SessionSuite) TestSanitizedAccountNeverExposesSecret() {
	account, err := s.service.Login(s.ctx, "admin@erp.com", "Admin@Secure1")
	s.Require().NoError(err)

	data, err := json.Marshal(account)
	s.Require().NoError(err)
	s.NotContains(string(data), "Admin@Secure1")

	data, err = json.Marshal(s.service.State())
	s.Require().NoError(err)
	s.NotContains(string(data), "Admin@Secure1")
}
