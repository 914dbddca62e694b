package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fpslabs/fps-backend/internal/shared/mmr"
	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

// RedisRatingStore persists player rating records as redis hashes.
type RedisRatingStore struct {
	rdb *redis.Client
}

func NewRedisRatingStore(rdb *redis.Client) *RedisRatingStore {
	return &RedisRatingStore{rdb: rdb}
}

type ratingRecord struct {
	PlayerID  string `redis:"player_id"`
	Rating    int    `redis:"rating"`
	UpdatedAt int64  `redis:"updated_at"`
}

func (s *RedisRatingStore) FindByPlayerID(ctx context.Context, playerID uuidstring.ID) (*mmr.PlayerRating, error) {
	cmd := s.rdb.HGetAll(ctx, ratingKey(playerID))
	res, err := cmd.Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load rating - %w", err)
	}
	// HGetAll returns an empty map, not redis.Nil, for a missing key.
	if len(res) == 0 {
		return nil, ErrRatingNotFound
	}

	var rec ratingRecord
	if err := cmd.Scan(&rec); err != nil {
		return nil, fmt.Errorf("failed to scan rating - %w", err)
	}
	rating, err := mmr.New(rec.Rating)
	if err != nil {
		return nil, fmt.Errorf("stored rating for %s is invalid - %w", playerID, err)
	}
	return &mmr.PlayerRating{
		PlayerID:  uuidstring.ID(rec.PlayerID),
		Current:   rating,
		UpdatedAt: time.Unix(rec.UpdatedAt, 0).UTC(),
	}, nil
}

func (s *RedisRatingStore) Save(ctx context.Context, r *mmr.PlayerRating) error {
	rec := ratingRecord{
		PlayerID:  r.PlayerID.String(),
		Rating:    r.Current.Value(),
		UpdatedAt: r.UpdatedAt.Unix(),
	}
	if _, err := s.rdb.HSet(ctx, ratingKey(r.PlayerID), rec).Result(); err != nil {
		return fmt.Errorf("failed to store rating - %w", err)
	}
	return nil
}
