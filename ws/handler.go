// file: ws/handler.go

package ws

import (
	"context"
	"go-recruit-api/config"
	"go-recruit-api/logger"
	"go-recruit-api/model"
	"net/http"

	"github.com/gorilla/websocket"
)

// ITokenVerifier is the slice of the token service the handshake needs.
type ITokenVerifier interface {
	Verify(ctx context.Context, token string) (*model.AppClaims, error)
	RequireKind(claims *model.AppClaims, kind model.TokenKind) error
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers cannot set custom headers on websocket dials; origin policy is
	// enforced by the token instead.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler authenticates and registers incoming channel connections.
type Handler struct {
	registry *Registry
	tokens   ITokenVerifier
}

func NewHandler(registry *Registry, tokens ITokenVerifier) *Handler {
	return &Handler{registry: registry, tokens: tokens}
}

// ServeHTTP runs the channel handshake: Connecting -> Authenticated -> Open.
// The bearer token arrives as a connection parameter; any verification
// failure rejects the connection without telling the client why.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	claims, err := h.tokens.Verify(r.Context(), token)
	if err == nil {
		err = h.tokens.RequireKind(claims, model.TokenKindAccess)
	}
	if err != nil {
		logger.Log.WithError(err).Warn("Channel handshake rejected")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		logger.Log.WithError(err).Warn("Channel upgrade failed")
		return
	}

	cfg := config.AppConfig.WebSocket
	session := NewSession(conn, claims.UserID, cfg.SendBufferSize, cfg.HeartbeatTimeout)
	h.registry.Register(session)

	go session.WritePump()
	go session.ReadPump(func(s *Session) {
		// Open -> Closed: terminal, always unregisters.
		h.registry.Unregister(s)
	})
}
