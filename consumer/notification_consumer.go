// file: consumer/notification_consumer.go

package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"go-recruit-api/logger"
	"go-recruit-api/model"
)

// IDispatcher is the slice of the delivery dispatcher the notification
// consumers call into.
type IDispatcher interface {
	OnDomainNotification(n *model.Notification) error
}

// NotificationConsumer maps recruitment pipeline events onto user-facing
// notifications: persist first, then best-effort push.
type NotificationConsumer struct {
	dispatcher IDispatcher
}

func NewNotificationConsumer(dispatcher IDispatcher) *NotificationConsumer {
	return &NotificationConsumer{dispatcher: dispatcher}
}

// HandleInterviewScheduled notifies the seeker about a newly scheduled
// interview.
func (c *NotificationConsumer) HandleInterviewScheduled(ctx context.Context, body []byte) error {
	var event model.InterviewScheduledEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Log.WithError(err).Error("Discarding undecodable interview.scheduled event")
		return nil
	}
	if event.ApplicationID == 0 || event.SeekerUserID == 0 {
		logger.Log.WithField("event_id", event.EventID).Warn("Discarding interview.scheduled event with missing correlation ids")
		return nil
	}

	content := fmt.Sprintf("An interview has been scheduled for %s.", event.InterviewTime.Format("2006-01-02 15:04"))
	if event.Location != "" {
		content += " Location: " + event.Location
	}
	if event.MeetingLink != "" {
		content += " Meeting link: " + event.MeetingLink
	}

	return c.dispatcher.OnDomainNotification(&model.Notification{
		UserID:     event.SeekerUserID,
		Type:       "interview_scheduled",
		Title:      "Interview scheduled",
		Content:    content,
		ResourceID: &event.ApplicationID,
	})
}

// HandleOfferSent notifies the seeker about a new offer.
func (c *NotificationConsumer) HandleOfferSent(ctx context.Context, body []byte) error {
	var event model.OfferSentEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Log.WithError(err).Error("Discarding undecodable offer.sent event")
		return nil
	}
	if event.ApplicationID == 0 || event.SeekerUserID == 0 {
		logger.Log.WithField("event_id", event.EventID).Warn("Discarding offer.sent event with missing correlation ids")
		return nil
	}

	return c.dispatcher.OnDomainNotification(&model.Notification{
		UserID:     event.SeekerUserID,
		Type:       "offer_sent",
		Title:      "You received an offer",
		Content:    fmt.Sprintf("An offer for the position %q has been sent to you.", event.Title),
		ResourceID: &event.ApplicationID,
	})
}

// HandleApplicationRejected notifies the seeker that an application was
// rejected.
func (c *NotificationConsumer) HandleApplicationRejected(ctx context.Context, body []byte) error {
	var event model.ApplicationRejectedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Log.WithError(err).Error("Discarding undecodable application.rejected event")
		return nil
	}
	if event.ApplicationID == 0 || event.SeekerUserID == 0 {
		logger.Log.WithField("event_id", event.EventID).Warn("Discarding application.rejected event with missing correlation ids")
		return nil
	}

	content := "Your application was not successful this time."
	if event.Reason != "" {
		content = fmt.Sprintf("Your application was not successful this time: %s", event.Reason)
	}

	return c.dispatcher.OnDomainNotification(&model.Notification{
		UserID:     event.SeekerUserID,
		Type:       "application_rejected",
		Title:      "Application update",
		Content:    content,
		ResourceID: &event.ApplicationID,
	})
}
