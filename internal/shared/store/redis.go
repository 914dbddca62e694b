package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

// NewRedisClient connects and pings so a bad address fails at startup
// rather than on the first request.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		Protocol: 2,
		PoolSize: 20,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to ping redis at %s - %w", addr, err)
	}
	return rdb, nil
}

func sessionKey(matchID uuidstring.ID) string {
	return fmt.Sprintf("session:%s", matchID.String())
}

func ratingKey(playerID uuidstring.ID) string {
	return fmt.Sprintf("rating:%s", playerID.String())
}
