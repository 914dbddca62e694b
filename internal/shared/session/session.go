package session

import (
	"time"

	"github.com/fpslabs/fps-backend/internal/shared/matchmaking"
	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

// Session tracks one match's lifecycle from pairing to completion. All
// mutation goes through Start, End and Cancel, which enforce the transition
// rules. Callers serialize access per match id; Session itself is not safe
// for concurrent use.
type Session struct {
	SessionID uuidstring.ID
	MatchID   uuidstring.ID
	GameMode  matchmaking.Mode
	PlayerIDs []uuidstring.ID

	status    Status
	startedAt time.Time
	endedAt   time.Time
	result    *Result
}

// New creates a session in the Paired state.
func New(matchID uuidstring.ID, playerIDs []uuidstring.ID, gameMode matchmaking.Mode) (*Session, error) {
	if matchID.IsNil() {
		return nil, ErrEmptyMatchID
	}
	if len(playerIDs) == 0 {
		return nil, ErrNoPlayers
	}
	return &Session{
		SessionID: uuidstring.NewID(),
		MatchID:   matchID,
		GameMode:  gameMode,
		PlayerIDs: playerIDs,
		status:    StatusPaired,
	}, nil
}

func (s *Session) Status() Status {
	return s.status
}

// StartedAt reports the recorded start time; ok is false before Start.
func (s *Session) StartedAt() (time.Time, bool) {
	return s.startedAt, !s.startedAt.IsZero()
}

// EndedAt reports the recorded end time; ok is false until End or Cancel.
func (s *Session) EndedAt() (time.Time, bool) {
	return s.endedAt, !s.endedAt.IsZero()
}

// Result returns the stored result, nil until the session finishes.
func (s *Session) Result() *Result {
	return s.result
}

// Start moves the session from Paired to InProgress and records the start
// time.
func (s *Session) Start() error {
	if s.status != StatusPaired {
		return invalidTransition(s.status, StatusInProgress)
	}
	s.status = StatusInProgress
	s.startedAt = time.Now().UTC()
	return nil
}

// End moves the session from InProgress to Finished, storing the result.
// The result must carry the session's match id; that check applies no
// matter what state the session is in.
func (s *Session) End(result *Result) error {
	if result == nil {
		return ErrNoResults
	}
	if result.MatchID != s.MatchID {
		return ErrMatchIDMismatch
	}
	if s.status != StatusInProgress {
		return invalidTransition(s.status, StatusFinished)
	}
	s.status = StatusFinished
	s.endedAt = time.Now().UTC()
	s.result = result
	return nil
}

// Cancel moves the session from Paired or InProgress to Cancelled and
// records the end time.
func (s *Session) Cancel() error {
	if s.status != StatusPaired && s.status != StatusInProgress {
		return invalidTransition(s.status, StatusCancelled)
	}
	s.status = StatusCancelled
	s.endedAt = time.Now().UTC()
	return nil
}
