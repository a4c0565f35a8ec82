package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix         = "dinnerbracket:session:"
	maxUpdateAttempts = 5
)

// RedisStore keeps sessions in Redis with a sliding ttl.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func key(token string) string { return keyPrefix + token }

func (s *RedisStore) Get(ctx context.Context, token string) (Tournament, error) {
	data, err := s.rdb.Get(ctx, key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Tournament{}, ErrNotFound
	}
	if err != nil {
		return Tournament{}, fmt.Errorf("reading session: %w", err)
	}
	return decode(data)
}

func (s *RedisStore) Put(ctx context.Context, token string, t Tournament) error {
	data, err := encode(t)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, key(token), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Update runs the read-modify-write under WATCH and retries when another
// writer touched the key in between.
func (s *RedisStore) Update(ctx context.Context, token string, fn func(*Tournament) error) error {
	k := key(token)

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("reading session: %w", err)
		}
		t, err := decode(data)
		if err != nil {
			return err
		}
		if err := fn(&t); err != nil {
			return err
		}
		out, err := encode(t)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, out, s.ttl)
			return nil
		})
		return err
	}

	for range maxUpdateAttempts {
		err := s.rdb.Watch(ctx, txf, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("updating session: %w", redis.TxFailedErr)
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	n, err := s.rdb.Del(ctx, key(token)).Result()
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Check pings Redis; it satisfies the server's health checker.
func (s *RedisStore) Check(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
