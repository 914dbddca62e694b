package session

import (
	"time"

	"github.com/fpslabs/fps-backend/internal/shared/matchmaking"
	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

// Record is the persistence form of a Session. Stores marshal Records; the
// state machine itself never leaves this package's control.
type Record struct {
	SessionID uuidstring.ID    `json:"session_id"`
	MatchID   uuidstring.ID    `json:"match_id"`
	GameMode  matchmaking.Mode `json:"game_mode"`
	PlayerIDs []uuidstring.ID  `json:"player_ids"`
	Status    Status           `json:"status"`
	StartedAt time.Time        `json:"started_at"`
	EndedAt   time.Time        `json:"ended_at"`
	Result    *ResultRecord    `json:"result,omitempty"`
}

// ResultRecord is the persistence form of a Result.
type ResultRecord struct {
	ResultID      uuidstring.ID        `json:"result_id"`
	MatchID       uuidstring.ID        `json:"match_id"`
	PlayerResults []PlayerResultRecord `json:"player_results"`
	WinnerID      uuidstring.ID        `json:"winner_id,omitempty"`
	EndedAt       time.Time            `json:"ended_at"`
}

type PlayerResultRecord struct {
	PlayerID uuidstring.ID `json:"player_id"`
	IsWinner bool          `json:"is_winner"`
	Score    *int          `json:"score,omitempty"`
}

// Snapshot captures the session for persistence.
func (s *Session) Snapshot() Record {
	rec := Record{
		SessionID: s.SessionID,
		MatchID:   s.MatchID,
		GameMode:  s.GameMode,
		PlayerIDs: s.PlayerIDs,
		Status:    s.status,
		StartedAt: s.startedAt,
		EndedAt:   s.endedAt,
	}
	if s.result != nil {
		rr := &ResultRecord{
			ResultID: s.result.ResultID,
			MatchID:  s.result.MatchID,
			WinnerID: s.result.WinnerID,
			EndedAt:  s.result.EndedAt,
		}
		for _, pr := range s.result.PlayerResults {
			rr.PlayerResults = append(rr.PlayerResults, PlayerResultRecord{
				PlayerID: pr.PlayerID,
				IsWinner: pr.IsWinner,
				Score:    pr.Score,
			})
		}
		rec.Result = rr
	}
	return rec
}

// Restore rebuilds a session from its persistence form.
func Restore(rec Record) *Session {
	s := &Session{
		SessionID: rec.SessionID,
		MatchID:   rec.MatchID,
		GameMode:  rec.GameMode,
		PlayerIDs: rec.PlayerIDs,
		status:    rec.Status,
		startedAt: rec.StartedAt,
		endedAt:   rec.EndedAt,
	}
	if rec.Result != nil {
		r := &Result{
			ResultID: rec.Result.ResultID,
			MatchID:  rec.Result.MatchID,
			WinnerID: rec.Result.WinnerID,
			EndedAt:  rec.Result.EndedAt,
		}
		for _, pr := range rec.Result.PlayerResults {
			r.PlayerResults = append(r.PlayerResults, PlayerResult{
				PlayerID: pr.PlayerID,
				IsWinner: pr.IsWinner,
				Score:    pr.Score,
			})
		}
		s.result = r
	}
	return s
}
