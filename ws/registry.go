// file: ws/registry.go

// Package ws owns the live channel state: which users currently hold open
// websocket sessions and how payloads are pushed to them. Persisted storage is
// the system of record; everything here is best-effort delivery on top of it.
package ws

import (
	"go-recruit-api/logger"
	"sync"

	"github.com/sirupsen/logrus"
)

// BroadcastResult reports the per-handle outcome of one broadcast.
type BroadcastResult struct {
	Attempted int
	Delivered int
}

// DeliveredAny is true when at least one handle accepted the payload.
func (r BroadcastResult) DeliveredAny() bool {
	return r.Delivered > 0
}

// userSessions is the handle set for a single user. Each set carries its own
// lock so that concurrent registrations for different users never contend.
// A set is marked dead at the moment it is removed from the registry map;
// a dead set refuses new members, which forces an in-flight registration that
// resolved the set before its removal to retry against a fresh one.
type userSessions struct {
	mu       sync.Mutex
	dead     bool
	sessions map[*Session]struct{}
}

func (u *userSessions) add(s *Session) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.dead {
		return false
	}
	u.sessions[s] = struct{}{}
	return true
}

func (u *userSessions) remove(s *Session) (empty bool) {
	u.mu.Lock()
	delete(u.sessions, s)
	empty = len(u.sessions) == 0
	u.mu.Unlock()
	return empty
}

// snapshot copies the current members so a broadcast can run without holding
// any lock across session I/O.
func (u *userSessions) snapshot() []*Session {
	u.mu.Lock()
	out := make([]*Session, 0, len(u.sessions))
	for s := range u.sessions {
		out = append(out, s)
	}
	u.mu.Unlock()
	return out
}

// Registry exclusively owns the mapping from user id to its session set.
// It is a single long-lived object, created at process start and torn down at
// shutdown. The outer map lock is held only for map lookups, never for
// delivery, so unrelated users do not serialize behind each other.
type Registry struct {
	mu    sync.RWMutex
	users map[int]*userSessions
}

func NewRegistry() *Registry {
	return &Registry{users: make(map[int]*userSessions)}
}

// Register adds the session to the set owned by its user. The session is
// visible to IsOnline and Broadcast by the time Register returns.
func (r *Registry) Register(s *Session) {
	for {
		r.mu.Lock()
		set, ok := r.users[s.UserID]
		if !ok {
			set = &userSessions{sessions: make(map[*Session]struct{})}
			r.users[s.UserID] = set
		}
		r.mu.Unlock()

		if set.add(s) {
			break
		}
		// The set was emptied and retired between the lookup and the add;
		// resolve a fresh one.
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":    s.UserID,
		"session_id": s.ID,
	}).Info("Session registered")
}

// Unregister removes the session. When it was the user's last handle the user
// transitions to offline. Safe to call concurrently with an in-flight
// broadcast for the same user: the broadcast works on a snapshot and may or
// may not reach the departing handle.
func (r *Registry) Unregister(s *Session) {
	r.mu.RLock()
	set, ok := r.users[s.UserID]
	r.mu.RUnlock()
	if !ok {
		return
	}

	if set.remove(s) {
		r.mu.Lock()
		if r.users[s.UserID] == set {
			// Re-check under the write lock: a concurrent Register may have
			// repopulated the set. An empty set dies atomically with its
			// removal from the map.
			set.mu.Lock()
			if len(set.sessions) == 0 {
				set.dead = true
				delete(r.users, s.UserID)
			}
			set.mu.Unlock()
		}
		r.mu.Unlock()
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":    s.UserID,
		"session_id": s.ID,
	}).Info("Session unregistered")
}

// IsOnline is true iff at least one handle is currently registered.
func (r *Registry) IsOnline(userID int) bool {
	r.mu.RLock()
	set, ok := r.users[userID]
	r.mu.RUnlock()
	if !ok {
		return false
	}

	set.mu.Lock()
	n := len(set.sessions)
	set.mu.Unlock()
	return n > 0
}

// Broadcast attempts delivery to every registered handle for the user. One
// handle's failure never prevents the attempt on the others; a handle whose
// outbound buffer is full is dropped rather than blocking the caller.
func (r *Registry) Broadcast(userID int, payload []byte) BroadcastResult {
	r.mu.RLock()
	set, ok := r.users[userID]
	r.mu.RUnlock()
	if !ok {
		return BroadcastResult{}
	}

	sessions := set.snapshot()
	result := BroadcastResult{Attempted: len(sessions)}

	for _, s := range sessions {
		if s.Send(payload) {
			result.Delivered++
			continue
		}

		logger.Log.WithFields(logrus.Fields{
			"user_id":    userID,
			"session_id": s.ID,
		}).Warn("Session not accepting writes, dropping handle")
		r.Unregister(s)
		s.Close()
	}

	return result
}

// CloseUser closes and unregisters every session the user holds. Used for
// logout-everywhere and account bans.
func (r *Registry) CloseUser(userID int) {
	r.mu.RLock()
	set, ok := r.users[userID]
	r.mu.RUnlock()
	if !ok {
		return
	}

	for _, s := range set.snapshot() {
		r.Unregister(s)
		s.Close()
	}
}

// Shutdown closes every open session. Called once at process teardown.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	users := r.users
	r.users = make(map[int]*userSessions)
	r.mu.Unlock()

	for _, set := range users {
		set.mu.Lock()
		set.dead = true
		set.mu.Unlock()
		for _, s := range set.snapshot() {
			s.Close()
		}
	}
}
