// file: service/dispatcher_test.go

package service

import (
	"go-recruit-api/model"
	"go-recruit-api/ws"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// fakeBroadcaster is a controllable IBroadcaster.
type fakeBroadcaster struct {
	online    bool
	delivered int
	calls     int
}

func (f *fakeBroadcaster) Broadcast(userID int, payload []byte) ws.BroadcastResult {
	f.calls++
	return ws.BroadcastResult{Attempted: f.delivered, Delivered: f.delivered}
}

func (f *fakeBroadcaster) IsOnline(userID int) bool { return f.online }

// mockNotificationRepo is a mock for repository.INotificationRepository.
type mockNotificationRepo struct{ mock.Mock }

func (m *mockNotificationRepo) Create(n *model.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func TestDispatcher_OnNewMessage(t *testing.T) {
	t.Run("offline recipient is not an error and skips the push", func(t *testing.T) {
		registry := &fakeBroadcaster{online: false}
		dispatcher := NewDispatcher(registry, nil)

		// Must not panic or surface anything: the message row is durable and
		// the recipient fetches it on the next poll.
		dispatcher.OnNewMessage(&model.Message{ID: 1, ReceiverID: 9, Content: "hi"})
		assert.Equal(t, 0, registry.calls)
	})

	t.Run("online recipient gets a push attempt", func(t *testing.T) {
		registry := &fakeBroadcaster{online: true, delivered: 2}
		dispatcher := NewDispatcher(registry, nil)

		dispatcher.OnNewMessage(&model.Message{ID: 1, ReceiverID: 9, Content: "hi"})
		assert.Equal(t, 1, registry.calls)
	})
}

func TestDispatcher_OnDomainNotification(t *testing.T) {
	t.Run("persists before pushing", func(t *testing.T) {
		registry := &fakeBroadcaster{online: true, delivered: 1}
		repo := new(mockNotificationRepo)
		dispatcher := NewDispatcher(registry, repo)

		n := &model.Notification{UserID: 9, Type: "offer_sent", Title: "You received an offer"}
		repo.On("Create", n).Return(nil).Once()

		err := dispatcher.OnDomainNotification(n)
		assert.NoError(t, err)
		assert.Equal(t, 1, registry.calls)
		repo.AssertExpectations(t)
	})

	t.Run("persistence failure propagates and skips the push", func(t *testing.T) {
		registry := &fakeBroadcaster{}
		repo := new(mockNotificationRepo)
		dispatcher := NewDispatcher(registry, repo)

		n := &model.Notification{UserID: 9, Type: "offer_sent"}
		repo.On("Create", n).Return(assert.AnError).Once()

		err := dispatcher.OnDomainNotification(n)
		assert.Error(t, err)
		assert.Equal(t, 0, registry.calls)
	})

	t.Run("offline recipient is still a success and skips the push", func(t *testing.T) {
		registry := &fakeBroadcaster{online: false}
		repo := new(mockNotificationRepo)
		dispatcher := NewDispatcher(registry, repo)

		n := &model.Notification{UserID: 9, Type: "application_rejected"}
		repo.On("Create", n).Return(nil).Once()

		err := dispatcher.OnDomainNotification(n)
		assert.NoError(t, err)
		assert.Equal(t, 0, registry.calls)
		repo.AssertExpectations(t)
	})
}
