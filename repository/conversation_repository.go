// file: repository/conversation_repository.go

package repository

import (
	"database/sql"
	"go-recruit-api/logger"
	"go-recruit-api/model"

	"github.com/sirupsen/logrus"
)

// IConversationRepository owns the one-conversation-per-pair invariant.
type IConversationRepository interface {
	GetOrCreate(userA, userB int) (conv *model.Conversation, created bool, err error)
}

type ConversationRepository struct {
	DB *sql.DB
}

func NewConversationRepository(db *sql.DB) *ConversationRepository {
	return &ConversationRepository{DB: db}
}

const conversationByPairQuery = `SELECT id, user_a_id, user_b_id, created_at FROM conversations
	WHERE (user_a_id = $1 AND user_b_id = $2) OR (user_a_id = $2 AND user_b_id = $1)`

// GetOrCreate returns the conversation for the participant pair, creating it
// when none exists yet. The pair is matched in either order. created reports
// whether this call inserted the row; under a concurrent insert for the same
// pair the unique pair index makes exactly one caller the creator and the
// other reads the winner's row back.
func (r *ConversationRepository) GetOrCreate(userA, userB int) (*model.Conversation, bool, error) {
	conv := &model.Conversation{}

	err := r.DB.QueryRow(conversationByPairQuery, userA, userB).
		Scan(&conv.ID, &conv.UserAID, &conv.UserBID, &conv.CreatedAt)
	if err == nil {
		return conv, false, nil
	}
	if err != sql.ErrNoRows {
		logger.Log.WithError(err).Error("Failed to query conversation by participants")
		return nil, false, err
	}

	insertQuery := `INSERT INTO conversations (user_a_id, user_b_id) VALUES ($1, $2)
		ON CONFLICT ((LEAST(user_a_id, user_b_id)), (GREATEST(user_a_id, user_b_id))) DO NOTHING
		RETURNING id, user_a_id, user_b_id, created_at`
	err = r.DB.QueryRow(insertQuery, userA, userB).
		Scan(&conv.ID, &conv.UserAID, &conv.UserBID, &conv.CreatedAt)
	if err == nil {
		logger.Log.WithFields(logrus.Fields{
			"conversation_id": conv.ID,
			"user_a_id":       conv.UserAID,
			"user_b_id":       conv.UserBID,
		}).Info("Conversation created for participant pair")
		return conv, true, nil
	}
	if err != sql.ErrNoRows {
		logger.Log.WithError(err).Error("Failed to execute create conversation query")
		return nil, false, err
	}

	// Lost the insert race; the winner's row is committed and visible now.
	err = r.DB.QueryRow(conversationByPairQuery, userA, userB).
		Scan(&conv.ID, &conv.UserAID, &conv.UserBID, &conv.CreatedAt)
	if err != nil {
		return nil, false, err
	}
	return conv, false, nil
}
