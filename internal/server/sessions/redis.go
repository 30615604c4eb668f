package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "bookstore:session:"

// RedisStore keeps each session as a JSON value whose TTL is the idle window.
type RedisStore struct {
	rdb  redis.UniversalClient
	idle time.Duration
	now  func() time.Time
}

func NewRedisStore(rdb redis.UniversalClient, idle time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, idle: idle, now: time.Now}
}

func (s *RedisStore) key(id string) string {
	return keyPrefix + id
}

func (s *RedisStore) Create(ctx context.Context, userName string) (*models.Session, error) {
	now := s.now().UTC()
	sess := &models.Session{
		ID:         newID(),
		UserName:   userName,
		CreatedAt:  now,
		LastSeenAt: now,
	}

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("redis error: %w", err)
	}

	sess := &models.Session{}
	if err := json.Unmarshal(data, sess); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return sess, nil
}

func (s *RedisStore) Touch(ctx context.Context, id string) (*models.Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.LastSeenAt = s.now().UTC()
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("session encode: %w", err)
	}

	// XX: a session deleted since the read stays deleted.
	ok, err := s.rdb.SetXX(ctx, s.key(id), data, s.idle).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}
	if !ok {
		return nil, common.ErrorNotFound
	}
	return sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

func (s *RedisStore) save(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key(sess.ID), data, s.idle).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}
