package model

import "time"

// Application is the slice of the collaborator-owned application record this
// core reads and reconciles. ConversationID starts null and is set exactly
// once by the first conversation.created consumer invocation that observes it
// still null.
type Application struct {
	ID             int       `json:"id"`
	JobID          int       `json:"job_id"`
	SeekerUserID   int       `json:"seeker_user_id"`
	HRUserID       int       `json:"hr_user_id"`
	ConversationID *int      `json:"conversation_id,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
