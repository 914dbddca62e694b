package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

var ErrEmptyRoomID = errors.New("room id is required")

// MessageStore persists delivered messages per room in send order.
type MessageStore interface {
	Append(ctx context.Context, m *Message) error
	History(ctx context.Context, roomID uuidstring.ID, limit int) ([]*Message, error)
}

// MemoryMessageStore keeps room histories in memory.
type MemoryMessageStore struct {
	mu    sync.RWMutex
	rooms map[uuidstring.ID][]*Message
}

func NewMemoryMessageStore() *MemoryMessageStore {
	return &MemoryMessageStore{
		rooms: make(map[uuidstring.ID][]*Message),
	}
}

func (s *MemoryMessageStore) Append(ctx context.Context, m *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[m.RoomID] = append(s.rooms[m.RoomID], m)
	return nil
}

// History returns the most recent messages in send order, at most limit.
func (s *MemoryMessageStore) History(ctx context.Context, roomID uuidstring.ID, limit int) ([]*Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.rooms[roomID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]*Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// RedisMessageStore persists room histories as redis lists of JSON
// messages, oldest first.
type RedisMessageStore struct {
	rdb *redis.Client
}

func NewRedisMessageStore(rdb *redis.Client) *RedisMessageStore {
	return &RedisMessageStore{rdb: rdb}
}

func roomHistoryKey(roomID uuidstring.ID) string {
	return fmt.Sprintf("chat-history:%s", roomID.String())
}

func (s *RedisMessageStore) Append(ctx context.Context, m *Message) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal message - %w", err)
	}
	return s.rdb.RPush(ctx, roomHistoryKey(m.RoomID), data).Err()
}

func (s *RedisMessageStore) History(ctx context.Context, roomID uuidstring.ID, limit int) ([]*Message, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}
	raw, err := s.rdb.LRange(ctx, roomHistoryKey(roomID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load history - %w", err)
	}
	msgs := make([]*Message, 0, len(raw))
	for _, item := range raw {
		var m Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message - %w", err)
		}
		msgs = append(msgs, &m)
	}
	return msgs, nil
}
