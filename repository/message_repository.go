// file: repository/message_repository.go

package repository

import (
	"database/sql"
	"go-recruit-api/logger"
	"go-recruit-api/model"

	"github.com/sirupsen/logrus"
)

// IMessageRepository defines the message persistence consumed by this core.
// Messages must be committed before any push attempt; the client's poll path
// reads them back if the push never lands.
type IMessageRepository interface {
	Create(msg *model.Message) error
	ExistsForApplication(applicationID int) (bool, error)
}

type MessageRepository struct {
	DB *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

// Create inserts a new message record.
func (r *MessageRepository) Create(msg *model.Message) error {
	log := logger.Log.WithFields(logrus.Fields{
		"sender_id":   msg.SenderID,
		"receiver_id": msg.ReceiverID,
	})

	query := `INSERT INTO messages (conversation_id, application_id, sender_id, receiver_id, content)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.DB.QueryRow(query, msg.ConversationID, msg.ApplicationID, msg.SenderID, msg.ReceiverID, msg.Content).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create message query")
		return err
	}
	return nil
}

// ExistsForApplication reports whether any message already references the
// application. The greeting consumer uses this as its pending-state check.
func (r *MessageRepository) ExistsForApplication(applicationID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM messages WHERE application_id = $1)`
	err := r.DB.QueryRow(query, applicationID).Scan(&exists)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to check for existing application message")
		return false, err
	}
	return exists, nil
}
