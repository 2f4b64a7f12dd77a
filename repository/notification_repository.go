// file: repository/notification_repository.go

package repository

import (
	"database/sql"
	"go-recruit-api/logger"
	"go-recruit-api/model"

	"github.com/sirupsen/logrus"
)

// INotificationRepository defines the notification persistence consumed by
// the delivery dispatcher.
type INotificationRepository interface {
	Create(n *model.Notification) error
}

type NotificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

// Create inserts a new notification record.
func (r *NotificationRepository) Create(n *model.Notification) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id": n.UserID,
		"type":    n.Type,
	})

	query := `INSERT INTO notifications (user_id, type, title, content, resource_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.DB.QueryRow(query, n.UserID, n.Type, n.Title, n.Content, n.ResourceID).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create notification query")
		return err
	}
	return nil
}
