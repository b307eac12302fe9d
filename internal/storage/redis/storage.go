package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erppro/identity/internal/model"
	"github.com/erppro/identity/internal/storage"
)

// Storage is a Redis-backed implementation of the account store
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.AccountStore = (*Storage)(nil)

// InsertAccount claims the email index entry with SETNX before writing the
// record. The NX claim is the atomic uniqueness gate: of two concurrent
// inserts for the same email, exactly one wins the claim.
func (s *Storage) InsertAccount(ctx context.Context, account *model.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	claimed, err := s.client.SetNX(ctx, emailIndexKey(account.Email), string(account.ID), 0).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrEmailExists
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, accountKey(account.ID), data, 0)
	pipe.SAdd(ctx, accountSetKey(), string(account.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	id, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	data, err := s.client.Get(ctx, accountKey(model.AccountID(id))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) CountAccounts(ctx context.Context) (int, error) {
	n, err := s.client.SCard(ctx, accountSetKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
