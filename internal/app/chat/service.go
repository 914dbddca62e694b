package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fpslabs/fps-backend/internal/shared/transport"
	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

const (
	maxMessageLength = 500
)

var (
	ErrEmptyMessage   = errors.New("message cannot be empty")
	ErrMessageTooLong = fmt.Errorf("message exceeds %d characters", maxMessageLength)
	ErrEmptySenderID  = errors.New("sender id is required")
)

// bannedWords is replaced case-insensitively with *** before a message is
// stored or delivered. TODO: load the list from config once moderation
// settles on a real word list.
var bannedWords = []string{"spam", "test"}

// Publisher fans a delivered message out to the room's listeners.
type Publisher interface {
	PublishChatMessage(ctx context.Context, event transport.ChatMessageEvent) error
}

// Service validates, filters, stores and publishes chat messages.
type Service struct {
	store     MessageStore
	publisher Publisher
	logger    *zap.Logger

	historyLimit int
}

func NewService(store MessageStore, publisher Publisher, historyLimit int, logger *zap.Logger) *Service {
	return &Service{
		store:        store,
		publisher:    publisher,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// SendMessage validates and filters body, stores the result and publishes
// it to the room. The returned message carries the filtered body.
func (s *Service) SendMessage(ctx context.Context, roomID, senderID uuidstring.ID, body string) (*Message, error) {
	if roomID.IsNil() {
		return nil, ErrEmptyRoomID
	}
	if senderID.IsNil() {
		return nil, ErrEmptySenderID
	}

	filtered, err := validateAndFilter(body)
	if err != nil {
		return nil, err
	}

	msg := newMessage(roomID, senderID, filtered)
	if err := s.store.Append(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store message - %w", err)
	}

	if s.publisher != nil {
		event := transport.ChatMessageEvent{
			RoomID:   msg.RoomID,
			SenderID: msg.SenderID,
			Body:     msg.Body,
			SentAt:   msg.SentAt,
		}
		if err := s.publisher.PublishChatMessage(ctx, event); err != nil {
			// The message is already stored; delivery is best effort.
			s.logger.Warn("failed to publish chat message",
				zap.String("room_id", msg.RoomID.String()),
				zap.Error(err))
		}
	}
	return msg, nil
}

// History returns the room's most recent messages in send order.
func (s *Service) History(ctx context.Context, roomID uuidstring.ID) ([]*Message, error) {
	if roomID.IsNil() {
		return nil, ErrEmptyRoomID
	}
	return s.store.History(ctx, roomID, s.historyLimit)
}

// validateAndFilter trims body, enforces the length bounds and masks
// banned words.
func validateAndFilter(body string) (string, error) {
	trimmed := strings.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", ErrEmptyMessage
	}
	if len(trimmed) > maxMessageLength {
		return "", ErrMessageTooLong
	}
	return maskBannedWords(trimmed), nil
}

func maskBannedWords(body string) string {
	for _, word := range bannedWords {
		body = replaceFold(body, word, "***")
	}
	return body
}

// replaceFold replaces every case-insensitive occurrence of old in s.
func replaceFold(s, old, replacement string) string {
	if old == "" {
		return s
	}
	var b strings.Builder
	lower := strings.ToLower(s)
	target := strings.ToLower(old)
	for {
		i := strings.Index(lower, target)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		b.WriteString(replacement)
		s = s[i+len(old):]
		lower = lower[i+len(target):]
	}
}
