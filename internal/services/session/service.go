package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/erppro/identity/internal/dependencies/clock"
	"github.com/erppro/identity/internal/dependencies/random"
	"github.com/erppro/identity/internal/model"
	"github.com/erppro/identity/internal/services/directory"
	"github.com/erppro/identity/internal/services/policy"
	"github.com/erppro/identity/internal/services/validate"
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Subscriber receives session state transitions. Subscribers are notified
// synchronously under the service's state lock, so a subscriber must not
// call back into the service.
type Subscriber func(model.SessionState)

type subscription struct {
	id int
	fn Subscriber
}

// Service is the session state machine. It orchestrates login and
// registration against the directory and publishes the resulting state to
// subscribers.
//
// A Service instance represents one session owner (a server process or a
// single client context). It is always explicitly constructed; there is no
// package-level instance.
type Service struct {
	directory *directory.Service
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger

	mu       sync.Mutex
	state    model.SessionState
	subs     []subscription
	nextSub  int
	issuance uint64
}

// New creates a new session service in the anonymous state
func New(dir *directory.Service, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		directory: dir,
		clock:     clk,
		random:    rnd,
		logger:    logger.With(slog.String("component", "session")),
		state:     model.AnonymousState(),
	}
}

// State returns a snapshot of the current session state
func (s *Service) State() model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a callback for state transitions and returns an id for
// Unsubscribe. The callback is invoked immediately with the current state,
// then once per transition, in strict emission order.
func (s *Service) Subscribe(fn Subscriber) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	fn(s.state)
	return id
}

// Unsubscribe removes a subscription. Unknown ids are a no-op.
func (s *Service) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// Login authenticates against the directory. On success the session moves to
// Authenticated with a freshly minted token; on failure the state is left
// untouched and model.ErrInvalidCredentials is returned.
func (s *Service) Login(ctx context.Context, email, secret string) (*model.SanitizedAccount, error) {
	account, err := s.directory.FindByEmailAndSecret(ctx, email, secret)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login lookup: %w", err)
	}

	sanitized := account.Sanitized()
	s.publish(model.SessionState{
		Account:       &sanitized,
		Authenticated: true,
		Token:         s.mintToken(account.ID),
	})

	s.logger.Info("login", slog.String("account_id", string(account.ID)))
	return &sanitized, nil
}

// Register validates the submitted fields, inserts the new account and, on
// success, moves the session to Authenticated with a fresh token.
//
// Validation is fail-fast in a fixed order (username, name, email, password
// strength, confirmation match, phone, birthdate, address): the first failing
// rule is the single reported error. New accounts always get the user role.
func (s *Service) Register(ctx context.Context, reg model.Registration) (*model.SanitizedAccount, error) {
	if err := s.validateRegistration(reg); err != nil {
		return nil, err
	}

	account := &model.Account{
		ID:               model.AccountID(uuid.NewString()),
		Username:         strings.TrimSpace(reg.Username),
		DisplayName:      strings.TrimSpace(reg.Name),
		Email:            strings.ToLower(strings.TrimSpace(reg.Email)),
		PhoneDigits:      reg.Phone,
		BirthDate:        reg.BirthDate,
		Address:          strings.TrimSpace(reg.Address),
		CredentialSecret: reg.Password,
		Role:             model.RoleUser,
		CreatedAt:        s.clock.Now(),
	}

	stored, err := s.directory.Insert(ctx, account)
	if err != nil {
		return nil, err
	}

	sanitized := stored.Sanitized()
	s.publish(model.SessionState{
		Account:       &sanitized,
		Authenticated: true,
		Token:         s.mintToken(stored.ID),
	})

	s.logger.Info("registration", slog.String("account_id", string(stored.ID)))
	return &sanitized, nil
}

// Logout moves the session to Anonymous. It always succeeds, from any state.
func (s *Service) Logout() {
	s.publish(model.AnonymousState())
	s.logger.Info("logout")
}

func (s *Service) validateRegistration(reg model.Registration) error {
	if err := validate.Username(reg.Username); err != nil {
		return err
	}
	if err := validate.DisplayName(reg.Name); err != nil {
		return err
	}
	if err := validate.EmailShape(reg.Email); err != nil {
		return err
	}
	if err := policy.Evaluate(reg.Password).Err(); err != nil {
		return err
	}
	if reg.Password != reg.ConfirmPassword {
		return model.ErrPasswordMismatch
	}
	if err := validate.PhoneDigits(reg.Phone); err != nil {
		return err
	}
	if err := validate.Adult(reg.BirthDate, s.clock.Now()); err != nil {
		return err
	}
	return validate.Address(reg.Address)
}

// publish replaces the session state wholesale and notifies every subscriber
// in registration order. The lock is held across the replacement and the
// notifications, so transitions are serialized and every subscriber observes
// every state exactly once, in order.
func (s *Service) publish(next model.SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = next
	for _, sub := range s.subs {
		sub.fn(next)
	}
}

// mintToken derives an opaque token from the account id, the issuance
// instant and a per-process issuance counter. The counter keeps tokens
// unique even when two issuances land on the same clock reading.
func (s *Service) mintToken(id model.AccountID) string {
	s.mu.Lock()
	s.issuance++
	n := s.issuance
	s.mu.Unlock()

	return fmt.Sprintf("tok_%s_%d_%d%s",
		id, s.clock.Now().UnixNano(), n, s.random.String(8, tokenAlphabet))
}
