package store

import (
	"context"
	"sync"

	"github.com/fpslabs/fps-backend/internal/shared/matchmaking"
	"github.com/fpslabs/fps-backend/internal/shared/mmr"
	"github.com/fpslabs/fps-backend/internal/shared/session"
	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

// MemoryQueueStore keeps one queue per mode behind one mutex per mode.
type MemoryQueueStore struct {
	mu     sync.Mutex
	queues map[matchmaking.Mode]*lockedQueue
}

type lockedQueue struct {
	mu    sync.Mutex
	queue *matchmaking.Queue
}

func NewMemoryQueueStore() *MemoryQueueStore {
	return &MemoryQueueStore{
		queues: make(map[matchmaking.Mode]*lockedQueue),
	}
}

func (s *MemoryQueueStore) WithQueue(ctx context.Context, mode matchmaking.Mode, fn func(q *matchmaking.Queue) error) error {
	if !mode.Valid() {
		return matchmaking.ErrInvalidMode
	}

	s.mu.Lock()
	lq, ok := s.queues[mode]
	if !ok {
		lq = &lockedQueue{queue: matchmaking.NewQueue(mode)}
		s.queues[mode] = lq
	}
	s.mu.Unlock()

	lq.mu.Lock()
	defer lq.mu.Unlock()

	// A cancelled caller must leave the queue untouched.
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(lq.queue)
}

// MemorySessionStore keeps session snapshots keyed by match id.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuidstring.ID]session.Record
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[uuidstring.ID]session.Record),
	}
}

func (s *MemorySessionStore) Create(ctx context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sess.MatchID]; ok {
		return ErrSessionExists
	}
	s.sessions[sess.MatchID] = sess.Snapshot()
	return nil
}

func (s *MemorySessionStore) FindByMatchID(ctx context.Context, matchID uuidstring.ID) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sessions[matchID]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return session.Restore(rec), nil
}

func (s *MemorySessionStore) Update(ctx context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sess.MatchID]; !ok {
		return ErrSessionNotStored
	}
	s.sessions[sess.MatchID] = sess.Snapshot()
	return nil
}

// MemoryRatingStore keeps player rating records by player id.
type MemoryRatingStore struct {
	mu      sync.RWMutex
	ratings map[uuidstring.ID]mmr.PlayerRating
}

func NewMemoryRatingStore() *MemoryRatingStore {
	return &MemoryRatingStore{
		ratings: make(map[uuidstring.ID]mmr.PlayerRating),
	}
}

func (s *MemoryRatingStore) FindByPlayerID(ctx context.Context, playerID uuidstring.ID) (*mmr.PlayerRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.ratings[playerID]
	if !ok {
		return nil, ErrRatingNotFound
	}
	copied := r
	return &copied, nil
}

func (s *MemoryRatingStore) Save(ctx context.Context, r *mmr.PlayerRating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings[r.PlayerID] = *r
	return nil
}
