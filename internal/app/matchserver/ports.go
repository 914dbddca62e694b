package matchserver

import (
	"context"

	"github.com/fpslabs/fps-backend/internal/shared/transport"
)

// Notifier delivers events to connected players and downstream services.
// Delivery is best effort; the service logs and continues on failure.
type Notifier interface {
	NotifyMatchFound(ctx context.Context, event transport.MatchFoundEvent) error
	NotifySession(ctx context.Context, event transport.SessionEvent) error
	NotifyRatingUpdated(ctx context.Context, event transport.RatingEvent) error
}

// NopNotifier discards every event.
type NopNotifier struct{}

func (NopNotifier) NotifyMatchFound(ctx context.Context, event transport.MatchFoundEvent) error {
	return nil
}

func (NopNotifier) NotifySession(ctx context.Context, event transport.SessionEvent) error {
	return nil
}

func (NopNotifier) NotifyRatingUpdated(ctx context.Context, event transport.RatingEvent) error {
	return nil
}
