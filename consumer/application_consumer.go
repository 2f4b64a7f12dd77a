// file: consumer/application_consumer.go

package consumer

import (
	"context"
	"encoding/json"
	"go-recruit-api/bus"
	"go-recruit-api/logger"
	"go-recruit-api/model"
	"go-recruit-api/repository"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultGreeting = "Hello, I am interested in this position."

// ApplicationConsumer reacts to new applications by opening the dialogue: it
// resolves the pair's conversation (creating it on first contact), persists a
// greeting message from the seeker to the HR, and publishes the message for
// push delivery.
type ApplicationConsumer struct {
	messageRepo      repository.IMessageRepository
	conversationRepo repository.IConversationRepository
	bus              bus.IEventBus
}

func NewApplicationConsumer(messageRepo repository.IMessageRepository, conversationRepo repository.IConversationRepository, eventBus bus.IEventBus) *ApplicationConsumer {
	return &ApplicationConsumer{
		messageRepo:      messageRepo,
		conversationRepo: conversationRepo,
		bus:              eventBus,
	}
}

// HandleApplicationCreated persists the greeting exactly once per application
// (the existence check keeps redelivery from duplicating it) and then
// publishes the message for best-effort push. When this application is the
// pair's first contact it also creates their conversation and announces it on
// the bus, which is what lets the reconciliation consumer backfill the
// conversation reference onto pending applications. Persistence errors
// propagate so the bus redelivers; every publish is fire-and-forget.
func (c *ApplicationConsumer) HandleApplicationCreated(ctx context.Context, body []byte) error {
	var event model.ApplicationCreatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Log.WithError(err).Error("Discarding undecodable application.created event")
		return nil
	}
	if event.ApplicationID == 0 || event.SeekerUserID == 0 || event.HRUserID == 0 {
		logger.Log.WithField("event_id", event.EventID).Warn("Discarding application.created event with missing correlation ids")
		return nil
	}

	log := logger.Log.WithFields(logrus.Fields{
		"event_id":       event.EventID,
		"application_id": event.ApplicationID,
	})

	exists, err := c.messageRepo.ExistsForApplication(event.ApplicationID)
	if err != nil {
		return err
	}
	if exists {
		log.Debug("Greeting already sent, event treated as applied")
		return nil
	}

	conv, convCreated, err := c.conversationRepo.GetOrCreate(event.SeekerUserID, event.HRUserID)
	if err != nil {
		return err
	}
	if convCreated {
		// The conversation row is committed; announcing it is best-effort,
		// like every publish-after-commit.
		convEvent := model.ConversationCreatedEvent{
			EventMeta: model.EventMeta{
				EventID:    uuid.NewString(),
				Version:    1,
				OccurredAt: time.Now(),
			},
			ConversationID: conv.ID,
			UserAID:        conv.UserAID,
			UserBID:        conv.UserBID,
		}
		if err := c.bus.Publish(ctx, bus.TopicConversationCreated, convEvent); err != nil {
			log.WithError(err).Error("Failed to publish conversation created event")
		}
	}

	content := event.Greeting
	if content == "" {
		content = defaultGreeting
	}

	msg := &model.Message{
		ConversationID: &conv.ID,
		ApplicationID:  &event.ApplicationID,
		SenderID:       event.SeekerUserID,
		ReceiverID:     event.HRUserID,
		Content:        content,
	}
	if err := c.messageRepo.Create(msg); err != nil {
		return err
	}

	// The message row is committed; a publish failure must not unwind it.
	chatEvent := model.ChatMessageEvent{
		EventMeta: model.EventMeta{
			EventID:    uuid.NewString(),
			Version:    1,
			OccurredAt: time.Now(),
		},
		ReceiverID: msg.ReceiverID,
		Message:    *msg,
	}
	if err := c.bus.Publish(ctx, bus.TopicChatMessage, chatEvent); err != nil {
		log.WithError(err).Error("Failed to publish chat message event")
	}

	log.WithField("message_id", msg.ID).Info("Greeting message created for new application")
	return nil
}
