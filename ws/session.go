// file: ws/session.go

package ws

import (
	"go-recruit-api/logger"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Control frames reserved by the channel wire contract. Everything else that
// arrives on a channel is an opaque payload owned by collaborators.
const (
	framePing = "ping"
	framePong = "pong"
)

// IConn is the subset of the websocket connection the session uses, extracted
// so tests can drive a session without a network.
type IConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadDeadline(t time.Time) error
	Close() error
}

// Session is one authenticated real-time connection belonging to a user.
// Writes go through a bounded buffer drained by a dedicated goroutine; a full
// buffer marks the session as not accepting writes so a slow client never
// blocks broadcasts to anyone else.
type Session struct {
	ID            string
	UserID        int
	EstablishedAt time.Time

	conn      IConn
	heartbeat time.Duration

	send chan []byte
	done chan struct{}
	once sync.Once
}

// NewSession wraps an upgraded connection. bufSize bounds the outbound queue
// and heartbeat bounds how long the peer may stay silent.
func NewSession(conn IConn, userID int, bufSize int, heartbeat time.Duration) *Session {
	if bufSize <= 0 {
		bufSize = 1
	}
	return &Session{
		ID:            uuid.NewString(),
		UserID:        userID,
		EstablishedAt: time.Now(),
		conn:          conn,
		heartbeat:     heartbeat,
		send:          make(chan []byte, bufSize),
		done:          make(chan struct{}),
	}
}

// Send queues the payload for delivery. It never blocks: false means the
// buffer is full or the session is closed, and the caller decides whether to
// drop the handle.
func (s *Session) Send(payload []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.send <- payload:
		return true
	case <-s.done:
		return false
	default:
		return false
	}
}

// Close is terminal and idempotent. It stops the write pump and closes the
// underlying connection; the read pump then unwinds on its own.
func (s *Session) Close() {
	s.once.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// WritePump drains the outbound buffer onto the connection. Run it in its own
// goroutine; it exits when the session closes or a write fails.
func (s *Session) WritePump() {
	for {
		select {
		case <-s.done:
			return
		case payload := <-s.send:
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Log.WithError(err).WithField("session_id", s.ID).Debug("Session write failed")
				s.Close()
				return
			}
		}
	}
}

// ReadPump handles inbound frames in receipt order. Any frame refreshes the
// heartbeat deadline; a "ping" control frame is answered with "pong". The pump
// exits when the peer disconnects or stays silent past the heartbeat window,
// and onClose runs exactly once afterwards.
func (s *Session) ReadPump(onClose func(*Session)) {
	defer func() {
		s.Close()
		onClose(s)
	}()

	for {
		if err := s.conn.SetReadDeadline(time.Now().Add(s.heartbeat)); err != nil {
			return
		}

		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			if !s.Closed() {
				logger.Log.WithField("session_id", s.ID).Debug("Session read ended")
			}
			return
		}

		if string(payload) == framePing {
			// Liveness probe: answer through the same bounded buffer as any
			// other write.
			s.Send([]byte(framePong))
		}
	}
}
