package gateway

import (
	"context"

	"go.uber.org/zap"

	"github.com/fpslabs/fps-backend/internal/shared/transport"
)

// EventNotifier fans match, session and rating events out to connected
// players over the hub and, when producers are wired, onto redis streams
// for other services. Stream producers are optional; a nil producer means
// in-process delivery only.
type EventNotifier struct {
	hub      *Hub
	players  transport.DynamicMessageProducer
	sessions transport.MessageProducer
	ratings  transport.MessageProducer
	rooms    transport.DynamicMessageProducer
	logger   *zap.Logger
}

type EventNotifierOption func(*EventNotifier)

func WithPlayerProducer(p transport.DynamicMessageProducer) EventNotifierOption {
	return func(n *EventNotifier) { n.players = p }
}

func WithSessionProducer(p transport.MessageProducer) EventNotifierOption {
	return func(n *EventNotifier) { n.sessions = p }
}

func WithRatingProducer(p transport.MessageProducer) EventNotifierOption {
	return func(n *EventNotifier) { n.ratings = p }
}

func WithRoomProducer(p transport.DynamicMessageProducer) EventNotifierOption {
	return func(n *EventNotifier) { n.rooms = p }
}

func NewEventNotifier(hub *Hub, logger *zap.Logger, opts ...EventNotifierOption) *EventNotifier {
	n := &EventNotifier{
		hub:    hub,
		logger: logger,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *EventNotifier) NotifyMatchFound(ctx context.Context, event transport.MatchFoundEvent) error {
	for _, playerID := range event.PlayerIDs {
		n.hub.Push(playerID, MessageTypeMatchFound, event)
		if n.players != nil {
			if err := n.players.SendTo(ctx, playerID, event); err != nil {
				return err
			}
		}
	}
	return nil
}

func (n *EventNotifier) NotifySession(ctx context.Context, event transport.SessionEvent) error {
	if n.sessions == nil {
		return nil
	}
	return n.sessions.Send(ctx, event)
}

func (n *EventNotifier) NotifyRatingUpdated(ctx context.Context, event transport.RatingEvent) error {
	n.hub.Push(event.PlayerID, MessageTypeRatingUpdate, event)
	if n.ratings == nil {
		return nil
	}
	return n.ratings.Send(ctx, event)
}

// PublishChatMessage forwards a delivered chat message to the room's
// stream for gateway consumers in other processes.
func (n *EventNotifier) PublishChatMessage(ctx context.Context, event transport.ChatMessageEvent) error {
	if n.rooms == nil {
		return nil
	}
	return n.rooms.SendTo(ctx, event.RoomID, event)
}
