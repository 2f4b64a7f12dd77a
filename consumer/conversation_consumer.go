// file: consumer/conversation_consumer.go

// Package consumer holds the idempotent event handlers that reconcile
// cross-module state. Every handler follows the same shape: read current
// state, apply the effect only if the record is still in its pending
// condition, otherwise treat the event as already applied. Lookup and update
// errors are returned, not swallowed, so the bus redelivers.
package consumer

import (
	"context"
	"encoding/json"
	"go-recruit-api/logger"
	"go-recruit-api/model"
	"go-recruit-api/repository"

	"github.com/sirupsen/logrus"
)

// ConversationConsumer backfills the conversation reference on application
// records once the conversation is created by the messaging module.
type ConversationConsumer struct {
	applicationRepo repository.IApplicationRepository
}

func NewConversationConsumer(applicationRepo repository.IApplicationRepository) *ConversationConsumer {
	return &ConversationConsumer{applicationRepo: applicationRepo}
}

// HandleConversationCreated links the new conversation to every application
// between the two participants whose reference is still null. Redelivery of
// the same event matches zero rows and is a no-op; the null guard is what
// makes this idempotent under duplicate and concurrent delivery.
func (c *ConversationConsumer) HandleConversationCreated(ctx context.Context, body []byte) error {
	var event model.ConversationCreatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		// A body that does not parse will never parse; requeueing it would
		// just loop. Drop it loudly.
		logger.Log.WithError(err).Error("Discarding undecodable conversation.created event")
		return nil
	}
	if event.ConversationID == 0 || event.UserAID == 0 || event.UserBID == 0 {
		logger.Log.WithField("event_id", event.EventID).Warn("Discarding conversation.created event with missing correlation ids")
		return nil
	}

	log := logger.Log.WithFields(logrus.Fields{
		"event_id":        event.EventID,
		"conversation_id": event.ConversationID,
		"user_a_id":       event.UserAID,
		"user_b_id":       event.UserBID,
	})

	ids, err := c.applicationRepo.FindIDsByParticipants(event.UserAID, event.UserBID)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		log.Debug("No pending applications for participant pair")
		return nil
	}

	affected, err := c.applicationRepo.LinkConversation(ids, event.ConversationID)
	if err != nil {
		return err
	}

	if affected == 0 {
		log.Debug("Conversation reference already set, event treated as applied")
	} else {
		log.WithField("rows_affected", affected).Info("Applications linked to conversation")
	}
	return nil
}
