// file: model/message.go

package model

import "time"

// Message is a persisted chat message between two users. The database is the
// system of record; a live push is only an optimization on top of it.
type Message struct {
	ID             int       `json:"id"`
	ConversationID *int      `json:"conversation_id,omitempty"`
	ApplicationID  *int      `json:"application_id,omitempty"`
	SenderID       int       `json:"sender_id"`
	ReceiverID     int       `json:"receiver_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// Notification is a persisted system notification for a single user.
type Notification struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	ResourceID *int      `json:"resource_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
