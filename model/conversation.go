// file: model/conversation.go

package model

import "time"

// Conversation is the dialogue record shared by a participant pair. There is
// at most one conversation per pair regardless of how many applications the
// pair accumulates.
type Conversation struct {
	ID        int       `json:"id"`
	UserAID   int       `json:"user_a_id"`
	UserBID   int       `json:"user_b_id"`
	CreatedAt time.Time `json:"created_at"`
}
