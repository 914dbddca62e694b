package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fpslabs/fps-backend/internal/shared/session"
	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

// RedisSessionStore persists session snapshots as JSON strings keyed by
// match id.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) Create(ctx context.Context, sess *session.Session) error {
	data, err := json.Marshal(sess.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal session - %w", err)
	}
	ok, err := s.rdb.SetNX(ctx, sessionKey(sess.MatchID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to store session - %w", err)
	}
	if !ok {
		return ErrSessionExists
	}
	return nil
}

func (s *RedisSessionStore) FindByMatchID(ctx context.Context, matchID uuidstring.ID) (*session.Session, error) {
	data, err := s.rdb.Get(ctx, sessionKey(matchID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session - %w", err)
	}
	var rec session.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session - %w", err)
	}
	return session.Restore(rec), nil
}

func (s *RedisSessionStore) Update(ctx context.Context, sess *session.Session) error {
	data, err := json.Marshal(sess.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal session - %w", err)
	}
	ok, err := s.rdb.SetXX(ctx, sessionKey(sess.MatchID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to update session - %w", err)
	}
	if !ok {
		return ErrSessionNotStored
	}
	return nil
}
