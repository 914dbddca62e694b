package matchmaking

import (
	"time"

	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

// Match records the requests paired together. Immutable once formed.
type Match struct {
	MatchID   uuidstring.ID
	GameMode  Mode
	Players   []*Request
	MatchedAt time.Time
}

func NewMatch(gameMode Mode, players []*Request) *Match {
	return &Match{
		MatchID:   uuidstring.NewID(),
		GameMode:  gameMode,
		Players:   players,
		MatchedAt: time.Now().UTC(),
	}
}

func (m *Match) PlayerIDs() []uuidstring.ID {
	ids := make([]uuidstring.ID, 0, len(m.Players))
	for _, p := range m.Players {
		ids = append(ids, p.PlayerID)
	}
	return ids
}
