package matchserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fpslabs/fps-backend/internal/shared/matchmaking"
	"github.com/fpslabs/fps-backend/internal/shared/mmr"
	"github.com/fpslabs/fps-backend/internal/shared/session"
	"github.com/fpslabs/fps-backend/internal/shared/store"
	"github.com/fpslabs/fps-backend/internal/shared/transport"
	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

var ErrEmptyPlayerID = errors.New("player id is required")

// Service implements the matchmaking and match lifecycle operations.
// Queue access is serialized per mode by the queue store; session and
// rating mutation is serialized per id by keyed mutexes.
type Service struct {
	queues   store.QueueStore
	sessions store.SessionStore
	ratings  store.RatingStore

	engine     matchmaking.Engine
	calculator mmr.Calculator
	notifier   Notifier
	logger     *zap.Logger

	sessionLocks *keyedMutex
	playerLocks  *keyedMutex
}

func NewService(queues store.QueueStore, sessions store.SessionStore, ratings store.RatingStore, notifier Notifier, logger *zap.Logger) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		queues:       queues,
		sessions:     sessions,
		ratings:      ratings,
		calculator:   mmr.EloCalculator{},
		notifier:     notifier,
		logger:       logger,
		sessionLocks: newKeyedMutex(),
		playerLocks:  newKeyedMutex(),
	}
}

// JoinResult reports the outcome of a join: either the player is waiting
// in the queue, or a match formed immediately.
type JoinResult struct {
	RequestID uuidstring.ID
	Matched   bool
	MatchID   uuidstring.ID
	PlayerIDs []uuidstring.ID
}

// JoinQueue enqueues the player and immediately attempts a pairing. When
// the new request completes a pair, a session is created in the paired
// state and both players are notified.
func (s *Service) JoinQueue(ctx context.Context, playerID uuidstring.ID, mode matchmaking.Mode, rating mmr.MMR) (*JoinResult, error) {
	if playerID.IsNil() {
		return nil, ErrEmptyPlayerID
	}

	req := matchmaking.NewRequest(playerID, mode, rating)
	var match *matchmaking.Match
	err := s.queues.WithQueue(ctx, mode, func(q *matchmaking.Queue) error {
		if err := q.Enqueue(req); err != nil {
			return err
		}
		match = s.engine.TryMatch(q)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if match == nil {
		return &JoinResult{RequestID: req.RequestID}, nil
	}
	if err := s.handleMatch(ctx, match); err != nil {
		return nil, err
	}
	return &JoinResult{
		RequestID: req.RequestID,
		Matched:   true,
		MatchID:   match.MatchID,
		PlayerIDs: match.PlayerIDs(),
	}, nil
}

// CancelQueue removes the player's pending request.
func (s *Service) CancelQueue(ctx context.Context, playerID uuidstring.ID, mode matchmaking.Mode) error {
	if playerID.IsNil() {
		return ErrEmptyPlayerID
	}
	return s.queues.WithQueue(ctx, mode, func(q *matchmaking.Queue) error {
		return q.Cancel(playerID)
	})
}

// QueueStatus describes a player's position in a mode's queue.
type QueueStatus struct {
	Queued      bool
	Rating      int
	EnqueuedAt  time.Time
	QueueLength int
}

// FindQueueStatus reports whether the player is waiting and how deep the
// queue is. It never modifies the queue.
func (s *Service) FindQueueStatus(ctx context.Context, playerID uuidstring.ID, mode matchmaking.Mode) (*QueueStatus, error) {
	if playerID.IsNil() {
		return nil, ErrEmptyPlayerID
	}
	status := &QueueStatus{}
	err := s.queues.WithQueue(ctx, mode, func(q *matchmaking.Queue) error {
		status.QueueLength = q.Len()
		if req := q.FindByPlayer(playerID); req != nil {
			status.Queued = true
			status.Rating = req.PlayerMMR.Value()
			status.EnqueuedAt = req.EnqueuedAt
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// handleMatch persists the paired session and notifies its players.
func (s *Service) handleMatch(ctx context.Context, match *matchmaking.Match) error {
	sess, err := session.New(match.MatchID, match.PlayerIDs(), match.GameMode)
	if err != nil {
		return fmt.Errorf("failed to create session for match %s - %w", match.MatchID, err)
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return fmt.Errorf("failed to store session for match %s - %w", match.MatchID, err)
	}

	event := transport.MatchFoundEvent{
		MatchID:   match.MatchID,
		GameMode:  string(match.GameMode),
		PlayerIDs: match.PlayerIDs(),
		MatchedAt: match.MatchedAt,
	}
	if err := s.notifier.NotifyMatchFound(ctx, event); err != nil {
		s.logger.Warn("failed to notify match found",
			zap.String("match_id", match.MatchID.String()),
			zap.Error(err))
	}

	s.logger.Info("match formed",
		zap.String("match_id", match.MatchID.String()),
		zap.String("game_mode", string(match.GameMode)),
		zap.Int("players", len(match.Players)))
	return nil
}

// StartMatch moves the match's session to in progress. When no session
// exists yet and the caller supplies the players, the session is created
// on demand; external match services may start matches the queue never saw.
func (s *Service) StartMatch(ctx context.Context, matchID uuidstring.ID, playerIDs []uuidstring.ID, mode matchmaking.Mode) (*session.Session, error) {
	unlock := s.sessionLocks.Lock(matchID)
	defer unlock()

	sess, err := s.sessions.FindByMatchID(ctx, matchID)
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		if len(playerIDs) == 0 {
			return nil, err
		}
		sess, err = session.New(matchID, playerIDs, mode)
		if err != nil {
			return nil, err
		}
		if err := s.sessions.Create(ctx, sess); err != nil {
			return nil, fmt.Errorf("failed to store session for match %s - %w", matchID, err)
		}
	case err != nil:
		return nil, err
	}

	if err := sess.Start(); err != nil {
		return nil, err
	}
	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to update session for match %s - %w", matchID, err)
	}

	s.notifySession(ctx, transport.SessionEvent{
		MatchID: matchID,
		Status:  sess.Status().String(),
	})
	return sess, nil
}

// PlayerResultInput is one player's reported outcome for a match.
type PlayerResultInput struct {
	PlayerID uuidstring.ID
	IsWinner bool
	Score    *int
}

// RatingChange records one player's settled rating after a match.
type RatingChange struct {
	PlayerID  uuidstring.ID
	OldRating int
	NewRating int
}

// EndMatchReport is the outcome of EndMatch: the finished session plus
// every participant's rating change.
type EndMatchReport struct {
	Session       *session.Session
	RatingChanges []RatingChange
}

// EndMatch finishes the match's session with the reported results and
// settles every participant's rating against the average rating of the
// opposing side. A winner id is derived when exactly one player won.
func (s *Service) EndMatch(ctx context.Context, matchID uuidstring.ID, results []PlayerResultInput) (*EndMatchReport, error) {
	unlock := s.sessionLocks.Lock(matchID)
	defer unlock()

	sess, err := s.sessions.FindByMatchID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	playerResults := make([]session.PlayerResult, 0, len(results))
	winners := 0
	var winnerID uuidstring.ID
	for _, r := range results {
		playerResults = append(playerResults, session.PlayerResult{
			PlayerID: r.PlayerID,
			IsWinner: r.IsWinner,
			Score:    r.Score,
		})
		if r.IsWinner {
			winners++
			winnerID = r.PlayerID
		}
	}
	if winners != 1 {
		winnerID = ""
	}

	result, err := session.NewResult(matchID, playerResults, winnerID)
	if err != nil {
		return nil, err
	}
	if err := sess.End(result); err != nil {
		return nil, err
	}
	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to update session for match %s - %w", matchID, err)
	}

	s.notifySession(ctx, transport.SessionEvent{
		MatchID:  matchID,
		Status:   sess.Status().String(),
		WinnerID: winnerID,
	})

	changes, err := s.settleRatings(ctx, matchID, results)
	if err != nil {
		return nil, err
	}
	return &EndMatchReport{Session: sess, RatingChanges: changes}, nil
}

// CancelMatch cancels the match's session from either live state.
func (s *Service) CancelMatch(ctx context.Context, matchID uuidstring.ID) (*session.Session, error) {
	unlock := s.sessionLocks.Lock(matchID)
	defer unlock()

	sess, err := s.sessions.FindByMatchID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err := sess.Cancel(); err != nil {
		return nil, err
	}
	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to update session for match %s - %w", matchID, err)
	}

	s.notifySession(ctx, transport.SessionEvent{
		MatchID: matchID,
		Status:  sess.Status().String(),
	})
	return sess, nil
}

// settleRatings updates every participant against the opposing side's
// average rating. Unknown players settle from the default rating.
func (s *Service) settleRatings(ctx context.Context, matchID uuidstring.ID, results []PlayerResultInput) ([]RatingChange, error) {
	if len(results) == 0 {
		return nil, nil
	}

	current := make(map[uuidstring.ID]int, len(results))
	for _, r := range results {
		rec, err := s.ratings.FindByPlayerID(ctx, r.PlayerID)
		switch {
		case errors.Is(err, store.ErrRatingNotFound):
			current[r.PlayerID] = mmr.DefaultValue
		case err != nil:
			return nil, fmt.Errorf("failed to load rating for player %s - %w", r.PlayerID, err)
		default:
			current[r.PlayerID] = rec.Current.Value()
		}
	}

	var winnerIDs, loserIDs []uuidstring.ID
	for _, r := range results {
		if r.IsWinner {
			winnerIDs = append(winnerIDs, r.PlayerID)
		} else {
			loserIDs = append(loserIDs, r.PlayerID)
		}
	}

	changes := make([]RatingChange, 0, len(results))
	for _, r := range results {
		opponents := winnerIDs
		if r.IsWinner {
			opponents = loserIDs
		}
		opponentAverage := mmr.DefaultValue
		if len(opponents) > 0 {
			sum := 0
			for _, id := range opponents {
				sum += current[id]
			}
			opponentAverage = sum / len(opponents)
		}

		score := 0.0
		if r.IsWinner {
			score = 1.0
		}
		change, err := s.UpdateRating(ctx, r.PlayerID, matchID, score, opponentAverage, mmr.DefaultKFactor)
		if err != nil {
			return nil, err
		}
		changes = append(changes, *change)
	}
	return changes, nil
}

// UpdateRating recalculates one player's rating from a match outcome and
// persists it. Players with no stored rating start from the default.
func (s *Service) UpdateRating(ctx context.Context, playerID, matchID uuidstring.ID, actualScore float64, opponentAverage, kFactor int) (*RatingChange, error) {
	if playerID.IsNil() {
		return nil, ErrEmptyPlayerID
	}
	opponent, err := mmr.New(opponentAverage)
	if err != nil {
		return nil, fmt.Errorf("%w: opponent average %d", mmr.ErrInvalidRatingInput, opponentAverage)
	}

	unlock := s.playerLocks.Lock(playerID)
	defer unlock()

	rec, err := s.ratings.FindByPlayerID(ctx, playerID)
	switch {
	case errors.Is(err, store.ErrRatingNotFound):
		rec = mmr.NewPlayerRating(playerID)
	case err != nil:
		return nil, fmt.Errorf("failed to load rating for player %s - %w", playerID, err)
	}

	oldRating := rec.Current.Value()
	newRating, err := s.calculator.NewRating(rec.Current, opponent, actualScore, kFactor)
	if err != nil {
		return nil, err
	}
	rec.Update(newRating)
	if err := s.ratings.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save rating for player %s - %w", playerID, err)
	}

	change := &RatingChange{
		PlayerID:  playerID,
		OldRating: oldRating,
		NewRating: newRating.Value(),
	}
	if err := s.notifier.NotifyRatingUpdated(ctx, transport.RatingEvent{
		PlayerID:  playerID,
		MatchID:   matchID,
		OldRating: oldRating,
		NewRating: newRating.Value(),
	}); err != nil {
		s.logger.Warn("failed to notify rating update",
			zap.String("player_id", playerID.String()),
			zap.Error(err))
	}
	return change, nil
}

// ScanMode drains the mode's queue of every pair the engine can form.
// Pairing and removal happen inside the queue's exclusion scope; session
// creation and notification follow outside it.
func (s *Service) ScanMode(ctx context.Context, mode matchmaking.Mode) (int, error) {
	var matches []*matchmaking.Match
	err := s.queues.WithQueue(ctx, mode, func(q *matchmaking.Queue) error {
		if q.Len() < 2 {
			return nil
		}
		for {
			match := s.engine.TryMatch(q)
			if match == nil {
				return nil
			}
			matches = append(matches, match)
		}
	})
	if err != nil {
		return 0, err
	}

	for _, match := range matches {
		if err := s.handleMatch(ctx, match); err != nil {
			return len(matches), err
		}
	}
	return len(matches), nil
}

func (s *Service) notifySession(ctx context.Context, event transport.SessionEvent) {
	if err := s.notifier.NotifySession(ctx, event); err != nil {
		s.logger.Warn("failed to notify session event",
			zap.String("match_id", event.MatchID.String()),
			zap.String("status", event.Status),
			zap.Error(err))
	}
}
