// file: ws/registry_test.go

package ws

import (
	"errors"
	"go-recruit-api/logger"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestMain runs setup before any tests in this package are executed.
func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// fakeConn is an in-memory IConn for tests.
type fakeConn struct {
	mu      sync.Mutex
	writes  [][]byte
	inbound chan []byte
	closed  bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{inbound: make(chan []byte, 8)}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	payload, ok := <-c.inbound
	if !ok {
		return 0, nil, errors.New("connection closed")
	}
	return 1, payload, nil
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("connection closed")
	}
	c.writes = append(c.writes, data)
	return nil
}

func (c *fakeConn) SetReadDeadline(t time.Time) error { return nil }

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.inbound)
	}
	return nil
}

func (c *fakeConn) written() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.writes))
	copy(out, c.writes)
	return out
}

func newTestSession(userID int) (*Session, *fakeConn) {
	conn := newFakeConn()
	return NewSession(conn, userID, 8, time.Minute), conn
}

func TestRegistry_OnlineTransitions(t *testing.T) {
	registry := NewRegistry()

	assert.False(t, registry.IsOnline(1))

	s1, _ := newTestSession(1)
	registry.Register(s1)
	assert.True(t, registry.IsOnline(1), "user must be online right after the first handle registers")

	s2, _ := newTestSession(1)
	registry.Register(s2)
	assert.True(t, registry.IsOnline(1))

	registry.Unregister(s1)
	assert.True(t, registry.IsOnline(1), "one remaining handle keeps the user online")

	registry.Unregister(s2)
	assert.False(t, registry.IsOnline(1), "user must be offline right after the last handle unregisters")
}

func TestRegistry_BroadcastToMultipleHandles(t *testing.T) {
	registry := NewRegistry()

	s1, c1 := newTestSession(1)
	s2, c2 := newTestSession(1)
	registry.Register(s1)
	registry.Register(s2)
	go s1.WritePump()
	go s2.WritePump()
	defer s1.Close()
	defer s2.Close()

	result := registry.Broadcast(1, []byte("hello"))
	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 2, result.Delivered)
	assert.True(t, result.DeliveredAny())

	assert.Eventually(t, func() bool {
		return len(c1.written()) == 1 && len(c2.written()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestRegistry_BroadcastSkipsUnrelatedUsers(t *testing.T) {
	registry := NewRegistry()

	s1, _ := newTestSession(1)
	registry.Register(s1)

	result := registry.Broadcast(2, []byte("hello"))
	assert.Equal(t, 0, result.Attempted)
	assert.False(t, result.DeliveredAny())
}

func TestRegistry_CloseMidBroadcastDoesNotAffectSibling(t *testing.T) {
	registry := NewRegistry()

	s1, _ := newTestSession(1)
	s2, c2 := newTestSession(1)
	registry.Register(s1)
	registry.Register(s2)
	go s2.WritePump()
	defer s2.Close()

	// s1 is closed before the fan-out reaches it. The broadcast must neither
	// fail nor skip s2.
	s1.Close()

	result := registry.Broadcast(1, []byte("hello"))
	assert.True(t, result.DeliveredAny())

	assert.Eventually(t, func() bool {
		return len(c2.written()) == 1
	}, time.Second, 10*time.Millisecond)

	// The dead handle was reaped along the way.
	registry.Unregister(s2)
	assert.False(t, registry.IsOnline(1))
}

func TestRegistry_SlowHandleIsDroppedNotBlocking(t *testing.T) {
	registry := NewRegistry()

	// Buffer of one and no write pump: the second broadcast finds the buffer
	// full and must drop the handle instead of blocking.
	conn := newFakeConn()
	s := NewSession(conn, 1, 1, time.Minute)
	registry.Register(s)

	first := registry.Broadcast(1, []byte("one"))
	assert.Equal(t, 1, first.Delivered)

	second := registry.Broadcast(1, []byte("two"))
	assert.Equal(t, 0, second.Delivered)
	assert.False(t, registry.IsOnline(1), "a handle that stopped draining gets dropped")
	assert.True(t, s.Closed())
}

func TestRegistry_CloseUser(t *testing.T) {
	registry := NewRegistry()

	s1, _ := newTestSession(7)
	s2, _ := newTestSession(7)
	registry.Register(s1)
	registry.Register(s2)

	registry.CloseUser(7)

	assert.False(t, registry.IsOnline(7))
	assert.True(t, s1.Closed())
	assert.True(t, s2.Closed())
}

func TestRegistry_RegisterNotLostWhenLastHandleUnregisters(t *testing.T) {
	registry := NewRegistry()

	old, _ := newTestSession(1)
	registry.Register(old)

	// The schedule under test: a second registration resolves the user's
	// current set, then the last existing handle unregisters to completion
	// before the new session lands in that set.
	registry.mu.RLock()
	set := registry.users[1]
	registry.mu.RUnlock()

	registry.Unregister(old)

	fresh, _ := newTestSession(1)
	assert.False(t, set.add(fresh), "a retired set must refuse new members")

	registry.Register(fresh)

	assert.True(t, registry.IsOnline(1), "the new session must be visible once Register returns")
	result := registry.Broadcast(1, []byte("hello"))
	assert.Equal(t, 1, result.Attempted)
	assert.Equal(t, 1, result.Delivered)

	registry.Unregister(fresh)
	assert.False(t, registry.IsOnline(1))
}

func TestRegistry_SameUserRegisterUnregisterRace(t *testing.T) {
	registry := NewRegistry()

	// All goroutines churn handles for the same user, so register keeps
	// racing against the unregister of the user's last other handle. Between
	// a goroutine's own Register and Unregister the user must stay online.
	var invisible int32
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				s, _ := newTestSession(1)
				registry.Register(s)
				if !registry.IsOnline(1) {
					atomic.AddInt32(&invisible, 1)
				}
				registry.Unregister(s)
				s.Close()
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, atomic.LoadInt32(&invisible), "a registered session must stay visible until its own unregister")
	assert.False(t, registry.IsOnline(1))
}

func TestRegistry_ConcurrentRegisterUnregister(t *testing.T) {
	registry := NewRegistry()

	var wg sync.WaitGroup
	for u := 0; u < 8; u++ {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				s, _ := newTestSession(userID)
				registry.Register(s)
				registry.Broadcast(userID, []byte("x"))
				registry.Unregister(s)
				s.Close()
			}
		}(u)
	}
	wg.Wait()

	for u := 0; u < 8; u++ {
		assert.False(t, registry.IsOnline(u))
	}
}
