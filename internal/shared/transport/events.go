package transport

import (
	"time"

	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

// MatchFoundEvent is published once per paired player when the engine
// produces a match.
type MatchFoundEvent struct {
	MatchID   uuidstring.ID   `json:"match_id"`
	GameMode  string          `json:"game_mode"`
	PlayerIDs []uuidstring.ID `json:"player_ids"`
	MatchedAt time.Time       `json:"matched_at"`
}

// SessionEvent announces a session lifecycle change (started, finished,
// cancelled).
type SessionEvent struct {
	MatchID  uuidstring.ID `json:"match_id"`
	Status   string        `json:"status"`
	WinnerID uuidstring.ID `json:"winner_id,omitempty"`
}

// RatingEvent announces a player's settled rating after a match.
type RatingEvent struct {
	PlayerID  uuidstring.ID `json:"player_id"`
	MatchID   uuidstring.ID `json:"match_id"`
	OldRating int           `json:"old_rating"`
	NewRating int           `json:"new_rating"`
}

// ChatMessageEvent carries a delivered chat message to room listeners.
type ChatMessageEvent struct {
	RoomID   uuidstring.ID `json:"room_id"`
	SenderID uuidstring.ID `json:"sender_id"`
	Body     string        `json:"body"`
	SentAt   time.Time     `json:"sent_at"`
}
