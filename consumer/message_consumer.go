// file: consumer/message_consumer.go

package consumer

import (
	"context"
	"encoding/json"
	"go-recruit-api/logger"
	"go-recruit-api/model"
)

// IMessagePusher is the slice of the delivery dispatcher the chat consumer
// calls into.
type IMessagePusher interface {
	OnNewMessage(msg *model.Message)
}

// MessageConsumer delivers queued chat messages to the recipient's live
// sessions. The message row is already committed by the time the event is
// published, so this handler never fails: an offline recipient simply fetches
// the message on the next poll.
type MessageConsumer struct {
	dispatcher IMessagePusher
}

func NewMessageConsumer(dispatcher IMessagePusher) *MessageConsumer {
	return &MessageConsumer{dispatcher: dispatcher}
}

// HandleChatMessage pushes the message best-effort.
func (c *MessageConsumer) HandleChatMessage(ctx context.Context, body []byte) error {
	var event model.ChatMessageEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Log.WithError(err).Error("Discarding undecodable chat message event")
		return nil
	}
	if event.ReceiverID == 0 {
		logger.Log.WithField("event_id", event.EventID).Warn("Discarding chat message event without receiver")
		return nil
	}

	c.dispatcher.OnNewMessage(&event.Message)
	return nil
}
