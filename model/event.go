// file: model/event.go

package model

import "time"

// Domain events crossing module boundaries. Every event is an explicit,
// versioned structure so a consumer fails fast on a shape mismatch instead of
// silently misreading fields. Events are immutable once published and may be
// delivered more than once; consumers must be idempotent.

// EventMeta carries the fields shared by every event.
type EventMeta struct {
	EventID    string    `json:"event_id"`
	Version    int       `json:"version"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ApplicationCreatedEvent is published after an application row is committed.
type ApplicationCreatedEvent struct {
	EventMeta
	ApplicationID int    `json:"application_id"`
	JobID         int    `json:"job_id"`
	SeekerUserID  int    `json:"seeker_user_id"`
	HRUserID      int    `json:"hr_user_id"`
	Greeting      string `json:"greeting,omitempty"`
}

// ApplicationRejectedEvent is published when an HR rejects an application.
type ApplicationRejectedEvent struct {
	EventMeta
	ApplicationID int    `json:"application_id"`
	SeekerUserID  int    `json:"seeker_user_id"`
	HRUserID      int    `json:"hr_user_id"`
	Reason        string `json:"reason,omitempty"`
}

// ConversationCreatedEvent is published after the conversation row is
// committed. The reconciliation consumer uses the participant pair to backfill
// conversation references on application records.
type ConversationCreatedEvent struct {
	EventMeta
	ConversationID int `json:"conversation_id"`
	UserAID        int `json:"user_a_id"`
	UserBID        int `json:"user_b_id"`
}

// InterviewScheduledEvent is published when an interview slot is committed.
type InterviewScheduledEvent struct {
	EventMeta
	InterviewID   int       `json:"interview_id"`
	ApplicationID int       `json:"application_id"`
	SeekerUserID  int       `json:"seeker_user_id"`
	HRUserID      int       `json:"hr_user_id"`
	InterviewTime time.Time `json:"interview_time"`
	Location      string    `json:"location,omitempty"`
	MeetingLink   string    `json:"meeting_link,omitempty"`
}

// OfferSentEvent is published when an offer is committed.
type OfferSentEvent struct {
	EventMeta
	ApplicationID int    `json:"application_id"`
	SeekerUserID  int    `json:"seeker_user_id"`
	HRUserID      int    `json:"hr_user_id"`
	Title         string `json:"title"`
}

// ChatMessageEvent wraps a persisted message for asynchronous push delivery.
type ChatMessageEvent struct {
	EventMeta
	ReceiverID int     `json:"receiver_id"`
	Message    Message `json:"message"`
}
