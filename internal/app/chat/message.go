package chat

import (
	"time"

	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

// Message is one delivered chat message. Body holds the masked text; the
// raw input is never stored.
type Message struct {
	MessageID uuidstring.ID `json:"message_id"`
	RoomID    uuidstring.ID `json:"room_id"`
	SenderID  uuidstring.ID `json:"sender_id"`
	Body      string        `json:"body"`
	SentAt    time.Time     `json:"sent_at"`
}

func newMessage(roomID, senderID uuidstring.ID, body string) *Message {
	return &Message{
		MessageID: uuidstring.NewID(),
		RoomID:    roomID,
		SenderID:  senderID,
		Body:      body,
		SentAt:    time.Now().UTC(),
	}
}
