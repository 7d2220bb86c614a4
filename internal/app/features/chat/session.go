// internal/app/features/chat/session.go
package chat

import (
	"net/http"

	uierrors "github.com/dalemusser/npoconnect/internal/app/features/errors"
	"github.com/dalemusser/npoconnect/internal/app/system/generation"
	"github.com/dalemusser/npoconnect/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type transcriptResponse struct {
	ID         string               `json:"id"`
	Ready      bool                 `json:"ready"`
	Busy       bool                 `json:"busy"`
	Transcript []generation.Message `json:"transcript"`
}

func newTranscript(id string, s *generation.ChatSession) transcriptResponse {
	return transcriptResponse{
		ID:         id,
		Ready:      s.Ready(),
		Busy:       s.Busy(),
		Transcript: s.Transcript(),
	}
}

// HandleStart opens a new chat, replacing any the caller already had.
// A chat that could not be initialized is still returned: its transcript
// carries the explanation and Ready is false.
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	if old, ok := h.Sessions.ChatID(r); ok {
		h.Chats.Delete(old)
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "chat init")
	defer cancel()

	s := h.Gen.NewChatSession(ctx)
	id := h.Chats.Add(s)
	if err := h.Sessions.SetChatID(w, r, id); err != nil {
		h.Chats.Delete(id)
		h.ErrLog.LogServerError(w, r, "storing chat id failed", err, "Could not start a chat.")
		return
	}

	h.Log.Info("chat started", zap.String("chat_id", id), zap.Bool("ready", s.Ready()))
	uierrors.WriteJSON(w, http.StatusCreated, newTranscript(id, s))
}

// ServeTranscript returns the caller's conversation so far.
func (h *Handler) ServeTranscript(w http.ResponseWriter, r *http.Request) {
	id, s, ok := h.current(r)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "no active chat", "No active chat.")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, newTranscript(id, s))
}

// HandleEnd closes the caller's chat. Closing when there is none succeeds.
func (h *Handler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	if id, ok := h.Sessions.ChatID(r); ok {
		h.Chats.Delete(id)
		h.Log.Info("chat ended", zap.String("chat_id", id))
	}
	if err := h.Sessions.ClearChatID(w, r); err != nil {
		h.ErrLog.LogServerError(w, r, "clearing chat id failed", err, "Could not end the chat.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
