package session

import (
	"time"

	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

// PlayerResult is one player's outcome in a finished match.
type PlayerResult struct {
	PlayerID uuidstring.ID
	IsWinner bool
	Score    *int
}

// Result records a finished session's outcomes. Immutable once constructed.
type Result struct {
	ResultID      uuidstring.ID
	MatchID       uuidstring.ID
	PlayerResults []PlayerResult
	WinnerID      uuidstring.ID
	EndedAt       time.Time
}

// NewResult validates and builds a match result. winnerID may be empty when
// no single winner applies.
func NewResult(matchID uuidstring.ID, playerResults []PlayerResult, winnerID uuidstring.ID) (*Result, error) {
	if matchID.IsNil() {
		return nil, ErrEmptyMatchID
	}
	if len(playerResults) == 0 {
		return nil, ErrNoResults
	}
	for _, pr := range playerResults {
		if pr.PlayerID.IsNil() {
			return nil, ErrEmptyPlayerID
		}
	}
	return &Result{
		ResultID:      uuidstring.NewID(),
		MatchID:       matchID,
		PlayerResults: playerResults,
		WinnerID:      winnerID,
		EndedAt:       time.Now().UTC(),
	}, nil
}
