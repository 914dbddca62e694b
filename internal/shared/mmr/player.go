package mmr

import (
	"time"

	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

// PlayerRating is the persisted rating record for one player.
type PlayerRating struct {
	PlayerID  uuidstring.ID
	Current   MMR
	UpdatedAt time.Time
}

// NewPlayerRating creates a record at the default rating, used the first
// time a player's result is settled.
func NewPlayerRating(playerID uuidstring.ID) *PlayerRating {
	return &PlayerRating{
		PlayerID:  playerID,
		Current:   Default(),
		UpdatedAt: time.Now().UTC(),
	}
}

func (p *PlayerRating) Update(newRating MMR) {
	p.Current = newRating
	p.UpdatedAt = time.Now().UTC()
}
