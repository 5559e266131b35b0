// Package rediskv is a Redis-backed storage.Backend. Every key is
// namespaced under a prefix so several installs can share one server.
package rediskv

import (
	"context"
	"errors"
	"fmt"
	"net"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/vizlearn/internal/storage"
)

// DefaultPrefix namespaces keys when no prefix is configured.
const DefaultPrefix = "vizlearn:"

// clearBatch is the SCAN count hint and the DEL batch size.
const clearBatch = 100

var _ storage.Backend = (*Store)(nil)

// Store keeps key/value pairs in Redis.
type Store struct {
	client *redis.Client
	prefix string
}

// New wraps an existing client. An empty prefix uses DefaultPrefix.
func New(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Dial connects to addr and returns a Store using the given database.
func Dial(addr, password string, db int, prefix string) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return New(client, prefix)
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, classify(fmt.Errorf("redis get %q: %w", key, err))
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return classify(fmt.Errorf("redis set %q: %w", key, err))
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return classify(fmt.Errorf("redis del %q: %w", key, err))
	}
	return nil
}

// Clear deletes only the keys under this store's prefix. Keys are
// collected before any are deleted so the scan cursor never shifts.
func (s *Store) Clear(ctx context.Context) error {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", clearBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return classify(fmt.Errorf("redis scan: %w", err))
	}

	for batch := range slices.Chunk(keys, clearBatch) {
		if err := s.client.Del(ctx, batch...).Err(); err != nil {
			return classify(fmt.Errorf("redis clear: %w", err))
		}
	}
	return nil
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

// classify maps errors that will not resolve on retry to
// storage.ErrUnavailable: a closed client, refused connections, and
// auth or permission failures.
func classify(err error) error {
	if errors.Is(err, redis.ErrClosed) {
		return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}
	msg := err.Error()
	if strings.Contains(msg, "NOAUTH") || strings.Contains(msg, "WRONGPASS") || strings.Contains(msg, "NOPERM") {
		return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}
	return err
}
