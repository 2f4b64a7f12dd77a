// file: bus/bus.go

// Package bus is the durable publish/subscribe transport between the
// independently evolving business modules. Delivery is at-least-once: a
// handler that returns an error gets the event redelivered, and a handler may
// see the same event twice even without errors. Consumers must be idempotent.
package bus

import "context"

// Routing keys for every event crossing a module boundary.
const (
	TopicApplicationCreated  = "application.created"
	TopicApplicationRejected = "application.rejected"
	TopicConversationCreated = "conversation.created"
	TopicInterviewScheduled  = "interview.scheduled"
	TopicOfferSent           = "offer.sent"
	TopicChatMessage         = "message.chat"
)

// Durable queue names, one per consumer group.
const (
	QueueApplicationCreated  = "recruit.application.created.queue"
	QueueApplicationRejected = "recruit.application.rejected.queue"
	QueueConversationCreated = "recruit.conversation.created.queue"
	QueueInterviewScheduled  = "recruit.interview.scheduled.queue"
	QueueOfferSent           = "recruit.offer.sent.queue"
	QueueChatMessage         = "recruit.chat.message.queue"
)

// Handler processes one delivered event body. Returning a non-nil error makes
// the broker redeliver the event; a handler must not swallow failures that
// should trigger a retry.
type Handler func(ctx context.Context, body []byte) error

// IEventBus defines the contract for the durable event transport.
// Publish must be called only after the triggering state change has been
// committed; a publish failure is logged by the caller and never rolls
// anything back.
type IEventBus interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
	Subscribe(queue, routingKey string, handler Handler) error
	Close() error
}
