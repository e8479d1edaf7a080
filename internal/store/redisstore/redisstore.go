// Package redisstore persists history and settings in Redis.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hay-kot/chefhat/internal/core/history"
	"github.com/hay-kot/chefhat/internal/core/language"
)

// Options configure the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Store implements history.Persister and language.Store. History is kept as
// the encoded entry array under a single key so writes replace it atomically.
type Store struct {
	client *redis.Client
	prefix string
}

// New creates a client and verifies the connection.
func New(ctx context.Context, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}

	return NewWithClient(client, opts.Prefix), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "chefhat"
	}
	return &Store{client: client, prefix: prefix}
}

// Close releases the client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Ping verifies the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Addr returns the server address.
func (s *Store) Addr() string {
	return s.client.Options().Addr
}

func (s *Store) historyKey() string  { return s.prefix + ":history" }
func (s *Store) languageKey() string { return s.prefix + ":language" }

// Read returns the stored entries. A missing key holds no entries.
func (s *Store) Read(ctx context.Context) ([]history.Entry, error) {
	data, err := s.client.Get(ctx, s.historyKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get history: %w", err)
	}

	entries, err := history.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", history.ErrCorrupted, s.historyKey(), err)
	}
	return entries, nil
}

// Write replaces the stored entries.
func (s *Store) Write(ctx context.Context, entries []history.Entry) error {
	data, err := history.Encode(entries)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := s.client.Set(ctx, s.historyKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("set history: %w", err)
	}
	return nil
}

// Language returns the stored preference or language.ErrNotSet.
func (s *Store) Language(ctx context.Context) (language.Code, error) {
	value, err := s.client.Get(ctx, s.languageKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", language.ErrNotSet
		}
		return "", fmt.Errorf("get language: %w", err)
	}

	code, err := language.Parse(value)
	if err != nil {
		return "", fmt.Errorf("%w: %v", language.ErrNotSet, err)
	}
	return code, nil
}

// SetLanguage persists the preference.
func (s *Store) SetLanguage(ctx context.Context, code language.Code) error {
	if !code.Valid() {
		return fmt.Errorf("unsupported language %q", code)
	}
	if err := s.client.Set(ctx, s.languageKey(), string(code), 0).Err(); err != nil {
		return fmt.Errorf("set language: %w", err)
	}
	return nil
}

var (
	_ history.Persister = (*Store)(nil)
	_ language.Store    = (*Store)(nil)
)
