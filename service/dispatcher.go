// file: service/dispatcher.go

package service

import (
	"encoding/json"
	"go-recruit-api/logger"
	"go-recruit-api/model"
	"go-recruit-api/repository"
	"go-recruit-api/ws"

	"github.com/sirupsen/logrus"
)

// IBroadcaster is the slice of the session registry the dispatcher pushes
// through.
type IBroadcaster interface {
	Broadcast(userID int, payload []byte) ws.BroadcastResult
	IsOnline(userID int) bool
}

// Dispatcher turns persisted messages and notifications into push attempts.
// Every push is best-effort: an offline recipient or a failed handle is never
// an error, because the record is already durable and the client's poll path
// will pick it up.
type Dispatcher struct {
	registry         IBroadcaster
	notificationRepo repository.INotificationRepository
}

func NewDispatcher(registry IBroadcaster, notificationRepo repository.INotificationRepository) *Dispatcher {
	return &Dispatcher{
		registry:         registry,
		notificationRepo: notificationRepo,
	}
}

// OnNewMessage pushes an already-persisted chat message to the recipient's
// open sessions. It never fails: delivery problems degrade to "seen on next
// poll" and are visible only in logs.
func (d *Dispatcher) OnNewMessage(msg *model.Message) {
	log := logger.Log.WithFields(logrus.Fields{
		"message_id":  msg.ID,
		"receiver_id": msg.ReceiverID,
	})

	if !d.registry.IsOnline(msg.ReceiverID) {
		log.Debug("Recipient offline, message awaits next poll")
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.WithError(err).Error("Failed to marshal message for push")
		return
	}

	result := d.registry.Broadcast(msg.ReceiverID, payload)
	if result.DeliveredAny() {
		log.WithField("delivered", result.Delivered).Info("Message pushed to live sessions")
	} else {
		log.Debug("Recipient went offline mid-push, message awaits next poll")
	}
}

// OnDomainNotification persists the notification and then attempts the same
// best-effort push. The persistence error propagates so the triggering
// consumer can let the bus redeliver; the push outcome does not.
func (d *Dispatcher) OnDomainNotification(n *model.Notification) error {
	if err := d.notificationRepo.Create(n); err != nil {
		return err
	}

	log := logger.Log.WithFields(logrus.Fields{
		"notification_id": n.ID,
		"user_id":         n.UserID,
		"type":            n.Type,
	})

	if !d.registry.IsOnline(n.UserID) {
		log.Debug("Recipient offline, notification awaits next poll")
		return nil
	}

	payload, err := json.Marshal(n)
	if err != nil {
		log.WithError(err).Error("Failed to marshal notification for push")
		return nil
	}

	if d.registry.Broadcast(n.UserID, payload).DeliveredAny() {
		log.Info("Notification pushed to live sessions")
	} else {
		log.Debug("Recipient offline, notification awaits next poll")
	}
	return nil
}
