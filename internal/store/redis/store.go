// Package redis is a Redis-backed implementation of the store interface,
// for setups that keep saved sessions off the local disk.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"bd2switch/internal/model"
	"bd2switch/internal/store"
)

// Store is a Redis-backed implementation of the store interface
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis store instance
func New(cfg Config) (*Store, error) {
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

	return &Store{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ store.Store = (*Store)(nil)

func (s *Store) List(ctx context.Context) ([]model.Account, error) {
	names, err := s.client.LRange(ctx, orderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	accounts := make([]model.Account, 0, len(names))
	for _, name := range names {
		records, err := s.Get(ctx, name)
		if errors.Is(err, model.ErrAccountNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, model.Account{Name: name, Records: records})
	}
	return accounts, nil
}

func (s *Store) Get(ctx context.Context, name string) (model.RecordSet, error) {
	data, err := s.client.Get(ctx, accountKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	var records model.RecordSet
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) Put(ctx context.Context, name string, records model.RecordSet) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}

	data, err := json.Marshal(records)
	if err != nil {
		return err
	}

	exists, err := s.client.Exists(ctx, accountKey(name)).Result()
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, accountKey(name), data, 0)
	if exists == 0 {
		pipe.RPush(ctx, orderKey(), name)
	}
	pipe.HSet(ctx, configKey(), "_warning", store.WarningText)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) Rename(ctx context.Context, oldName, newName string) error {
	if oldName == newName {
		return nil
	}
	if err := store.ValidateName(newName); err != nil {
		return err
	}

	exists, err := s.client.Exists(ctx, accountKey(newName)).Result()
	if err != nil {
		return err
	}
	if exists > 0 {
		return model.ErrNameConflict
	}

	data, err := s.client.Get(ctx, accountKey(oldName)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.ErrAccountNotFound
	}
	if err != nil {
		return err
	}

	// Rewrite the order list with the renamed entry in place.
	names, err := s.client.LRange(ctx, orderKey(), 0, -1).Result()
	if err != nil {
		return err
	}
	for i, name := range names {
		if name == oldName {
			names[i] = newName
		}
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, accountKey(newName), data, 0)
	pipe.Del(ctx, accountKey(oldName))
	pipe.Del(ctx, orderKey())
	if len(names) > 0 {
		pipe.RPush(ctx, orderKey(), namesToAny(names)...)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) Remove(ctx context.Context, name string) error {
	deleted, err := s.client.Del(ctx, accountKey(name)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return model.ErrAccountNotFound
	}
	return s.client.LRem(ctx, orderKey(), 1, name).Err()
}

func (s *Store) Language(ctx context.Context) (string, error) {
	lang, err := s.client.HGet(ctx, configKey(), "language").Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return lang, nil
}

func (s *Store) SetLanguage(ctx context.Context, lang string) error {
	return s.client.HSet(ctx, configKey(), "language", lang, "_warning", store.WarningText).Err()
}

func namesToAny(names []string) []any {
	out := make([]any, len(names))
	for i, name := range names {
		out[i] = name
	}
	return out
}
