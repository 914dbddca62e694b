package matchmaking

import (
	"time"

	"github.com/fpslabs/fps-backend/internal/shared/mmr"
	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

// Request is one player's pending matchmaking request.
type Request struct {
	RequestID  uuidstring.ID
	PlayerID   uuidstring.ID
	GameMode   Mode
	PlayerMMR  mmr.MMR
	EnqueuedAt time.Time
}

func NewRequest(playerID uuidstring.ID, gameMode Mode, playerMMR mmr.MMR) *Request {
	return &Request{
		RequestID:  uuidstring.NewID(),
		PlayerID:   playerID,
		GameMode:   gameMode,
		PlayerMMR:  playerMMR,
		EnqueuedAt: time.Now().UTC(),
	}
}
