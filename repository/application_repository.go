// file: repository/application_repository.go

package repository

import (
	"database/sql"
	"go-recruit-api/logger"
	"go-recruit-api/model"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// IApplicationRepository defines the conditional-update record store consumed
// by the reconciliation consumers.
type IApplicationRepository interface {
	FindIDsByParticipants(userA, userB int) ([]int, error)
	LinkConversation(applicationIDs []int, conversationID int) (int64, error)
	GetByID(id int) (*model.Application, error)
}

type ApplicationRepository struct {
	DB *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

// FindIDsByParticipants returns the ids of applications between the two users
// that do not yet reference a conversation. The pair is matched in either
// direction because the event does not say which participant is the seeker.
func (r *ApplicationRepository) FindIDsByParticipants(userA, userB int) ([]int, error) {
	query := `SELECT id FROM applications
		WHERE ((seeker_user_id = $1 AND hr_user_id = $2) OR (seeker_user_id = $2 AND hr_user_id = $1))
		AND conversation_id IS NULL`

	rows, err := r.DB.Query(query, userA, userB)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to query applications by participants")
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// LinkConversation sets the conversation reference on the given applications,
// but only where it is still null at update time. The null guard makes the
// write first-wins: a redelivered or concurrent event matches zero rows, and
// the call reports how many records it actually changed.
func (r *ApplicationRepository) LinkConversation(applicationIDs []int, conversationID int) (int64, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"conversation_id": conversationID,
		"application_ids": applicationIDs,
	})

	query := `UPDATE applications SET conversation_id = $1
		WHERE id = ANY($2) AND conversation_id IS NULL`

	res, err := r.DB.Exec(query, conversationID, pq.Array(applicationIDs))
	if err != nil {
		log.WithError(err).Error("Failed to execute link conversation update")
		return 0, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	log.WithField("rows_affected", affected).Info("Linked conversation to applications")
	return affected, nil
}

// GetByID retrieves a single application record.
func (r *ApplicationRepository) GetByID(id int) (*model.Application, error) {
	app := &model.Application{}
	query := `SELECT id, job_id, seeker_user_id, hr_user_id, conversation_id, status, created_at FROM applications WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&app.ID, &app.JobID, &app.SeekerUserID, &app.HRUserID, &app.ConversationID, &app.Status, &app.CreatedAt)
	if err != nil {
		return nil, err
	}
	return app, nil
}
