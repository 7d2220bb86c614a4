// internal/app/features/chat/handler.go
package chat

import (
	"net/http"
	"slices"

	uierrors "github.com/dalemusser/npoconnect/internal/app/features/errors"
	"github.com/dalemusser/npoconnect/internal/app/store/chats"
	"github.com/dalemusser/npoconnect/internal/app/system/generation"
	"github.com/dalemusser/npoconnect/internal/app/system/limits"
	"github.com/dalemusser/npoconnect/internal/app/system/session"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handler serves the chat assistant. The caller's session id lives in the
// session cookie; the session itself lives in Chats.
type Handler struct {
	Gen      *generation.Orchestrator
	Chats    *chats.Registry
	Sessions *session.Manager
	Upgrader websocket.Upgrader
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

// NewHandler constructs the chat handler. allowedOrigins limits websocket
// upgrades; "*" or an empty list accepts any origin.
func NewHandler(gen *generation.Orchestrator, registry *chats.Registry, sm *session.Manager, allowedOrigins []string, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Gen:      gen,
		Chats:    registry,
		Sessions: sm,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
		ErrLog: errLog,
		Log:    logger,
	}
}

func checkOrigin(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}

// current resolves the caller's live chat session.
func (h *Handler) current(r *http.Request) (string, *generation.ChatSession, bool) {
	id, ok := h.Sessions.ChatID(r)
	if !ok {
		return "", nil, false
	}
	s, ok := h.Chats.Get(id)
	if !ok {
		return "", nil, false
	}
	return id, s, true
}

// inbound is a message from the client.
type inbound struct {
	Message string `json:"message"`
}

// maxMessage bounds inbound chat frames.
const maxMessage = limits.MaxChatMessage
