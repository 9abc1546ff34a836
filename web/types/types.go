package types

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is a single turn of the conversation, stored in the DB.
type ChatMessage struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
}

// Session is one conversation with the bot. A session goes inactive when
// the user says goodbye.
type Session struct {
	ID         uuid.UUID
	CreatedAt  time.Time
	LastActive time.Time
	IsActive   bool
}
