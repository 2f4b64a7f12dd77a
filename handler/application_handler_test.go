// handler/application_handler_test.go
package handler_test

import (
	"database/sql"
	"go-recruit-api/handler"
	"go-recruit-api/model"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockApplicationRepository is a mock for repository.IApplicationRepository.
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) FindIDsByParticipants(userA, userB int) ([]int, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockApplicationRepository) LinkConversation(applicationIDs []int, conversationID int) (int64, error) {
	args := m.Called(applicationIDs, conversationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationRepository) GetByID(id int) (*model.Application, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func getApplication(h *handler.ApplicationHandler, id string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/applications/"+id, nil)
	req.SetPathValue("id", id)

	handler.ErrorHandlingMiddleware(h.GetApplication).ServeHTTP(rr, req)
	return rr
}

func TestGetApplication(t *testing.T) {
	t.Run("returns the record with its conversation reference", func(t *testing.T) {
		repo := new(MockApplicationRepository)
		conversationID := 100
		repo.On("GetByID", 42).Return(&model.Application{
			ID:             42,
			JobID:          3,
			SeekerUserID:   5,
			HRUserID:       9,
			ConversationID: &conversationID,
			Status:         "pending",
		}, nil)

		rr := getApplication(handler.NewApplicationHandler(repo), "42")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"conversation_id":100`)
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		repo := new(MockApplicationRepository)
		repo.On("GetByID", 42).Return(nil, sql.ErrNoRows)

		rr := getApplication(handler.NewApplicationHandler(repo), "42")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("non-numeric id is a 400", func(t *testing.T) {
		repo := new(MockApplicationRepository)

		rr := getApplication(handler.NewApplicationHandler(repo), "forty-two")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		repo.AssertNotCalled(t, "GetByID", mock.Anything)
	})

	t.Run("store error is a 500", func(t *testing.T) {
		repo := new(MockApplicationRepository)
		repo.On("GetByID", 42).Return(nil, assert.AnError)

		rr := getApplication(handler.NewApplicationHandler(repo), "42")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
