package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

const (
	SessionEventStream = "session-events"
	RatingEventStream  = "rating-events"
)

// PlayerStream names the per-player stream a gateway consumer reads for
// direct notifications.
func PlayerStream(playerID uuidstring.ID) string {
	return fmt.Sprintf("player-events:%s", playerID.String())
}

// RoomStream names the per-room stream chat messages fan out on.
func RoomStream(roomID uuidstring.ID) string {
	return fmt.Sprintf("room-events:%s", roomID.String())
}

// MessageProducer publishes to a fixed stream.
type MessageProducer interface {
	Send(ctx context.Context, msg any) error
}

// DynamicMessageProducer publishes to a per-recipient stream.
type DynamicMessageProducer interface {
	SendTo(ctx context.Context, recipientID uuidstring.ID, msg any) error
}

type RedisMessageProducer struct {
	rdb    *redis.Client
	stream string
}

func NewRedisMessageProducer(rdb *redis.Client, stream string) *RedisMessageProducer {
	return &RedisMessageProducer{
		rdb:    rdb,
		stream: stream,
	}
}

func (r *RedisMessageProducer) Send(ctx context.Context, msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return r.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		ID:     "*",
		Values: map[string]interface{}{
			"payload": data,
		},
	}).Err()
}

type RedisDynamicMessageProducer struct {
	rdb    *redis.Client
	stream func(uuidstring.ID) string
}

func NewRedisDynamicMessageProducer(rdb *redis.Client, streamNameFunc func(uuidstring.ID) string) *RedisDynamicMessageProducer {
	return &RedisDynamicMessageProducer{
		rdb:    rdb,
		stream: streamNameFunc,
	}
}

func (r *RedisDynamicMessageProducer) SendTo(ctx context.Context, recipientID uuidstring.ID, msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return r.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream(recipientID),
		ID:     "*",
		Values: map[string]interface{}{
			"payload": data,
		},
	}).Err()
}
