package matchmaking

import (
	"slices"

	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

// Queue holds the pending requests for one game mode in arrival order.
// Arrival order is the fairness basis for pairing and is preserved exactly;
// removals never reorder the remaining requests.
//
// Queue is not safe for concurrent use. The queue store serializes every
// read-modify-write sequence per mode.
type Queue struct {
	QueueID  uuidstring.ID
	GameMode Mode

	requests []*Request
}

func NewQueue(gameMode Mode) *Queue {
	return &Queue{
		QueueID:  uuidstring.NewID(),
		GameMode: gameMode,
	}
}

// Enqueue appends a request. A player may hold at most one live request per
// queue, and the request's mode must match the queue's.
func (q *Queue) Enqueue(r *Request) error {
	if r.GameMode != q.GameMode {
		return ErrModeMismatch
	}
	for _, existing := range q.requests {
		if existing.PlayerID == r.PlayerID {
			return ErrDuplicatePlayer
		}
	}
	q.requests = append(q.requests, r)
	return nil
}

// Cancel removes the player's live request.
func (q *Queue) Cancel(playerID uuidstring.ID) error {
	for i, r := range q.requests {
		if r.PlayerID == playerID {
			q.requests = slices.Delete(q.requests, i, i+1)
			return nil
		}
	}
	return ErrPlayerNotQueued
}

// FindByPlayer returns the player's live request, or nil.
func (q *Queue) FindByPlayer(playerID uuidstring.ID) *Request {
	for _, r := range q.requests {
		if r.PlayerID == playerID {
			return r
		}
	}
	return nil
}

// Requests returns the pending requests in arrival order. The slice is a
// copy; the requests are shared.
func (q *Queue) Requests() []*Request {
	return slices.Clone(q.requests)
}

func (q *Queue) Len() int {
	return len(q.requests)
}
