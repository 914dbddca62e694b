package store

import (
	"context"
	"errors"

	"github.com/fpslabs/fps-backend/internal/shared/matchmaking"
	"github.com/fpslabs/fps-backend/internal/shared/mmr"
	"github.com/fpslabs/fps-backend/internal/shared/session"
	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

var (
	ErrRatingNotFound   = errors.New("no rating record for player")
	ErrSessionExists    = errors.New("a session already exists for this match")
	ErrSessionNotStored = errors.New("session has not been created")
)

// QueueStore owns every mode's matchmaking queue. WithQueue runs fn with
// exclusive access to the mode's queue, creating the queue lazily on first
// use. Every read-modify-write sequence on a queue (enqueue plus immediate
// match, cancel, periodic scan) happens inside a single WithQueue call, so
// no two sequences on the same mode can interleave.
type QueueStore interface {
	WithQueue(ctx context.Context, mode matchmaking.Mode, fn func(q *matchmaking.Queue) error) error
}

// SessionStore persists match sessions keyed by match id. FindByMatchID
// returns session.ErrSessionNotFound when no session exists for the match.
type SessionStore interface {
	Create(ctx context.Context, s *session.Session) error
	FindByMatchID(ctx context.Context, matchID uuidstring.ID) (*session.Session, error)
	Update(ctx context.Context, s *session.Session) error
}

// RatingStore persists player rating records. FindByPlayerID returns
// ErrRatingNotFound for players with no recorded rating.
type RatingStore interface {
	FindByPlayerID(ctx context.Context, playerID uuidstring.ID) (*mmr.PlayerRating, error)
	Save(ctx context.Context, r *mmr.PlayerRating) error
}
