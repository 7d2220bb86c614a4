// internal/app/features/chat/stream.go
package chat

import (
	"context"
	"errors"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/npoconnect/internal/app/features/errors"
	"github.com/dalemusser/npoconnect/internal/app/system/generation"
	"github.com/dalemusser/npoconnect/internal/app/system/timeouts"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

// frame is one websocket message to the client. Error is set, and the
// update left zero, when a message was rejected before streaming began.
type frame struct {
	generation.Update
	Error string `json:"error,omitempty"`
}

type messageResponse struct {
	Reply      string               `json:"reply"`
	Failed     bool                 `json:"failed"`
	Transcript []generation.Message `json:"transcript"`
}

// HandleMessage sends one message and answers when the reply is complete.
// A failed stream still answers 200: the reply is the error text shown in
// the transcript and Failed is set.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	_, s, ok := h.current(r)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "no active chat", "No active chat.")
		return
	}
	var in inbound
	if err := uierrors.DecodeJSONLimit(w, r, &in, maxMessage); err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad chat payload", err, "Invalid request body.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Chat(), h.Log, "chat turn")
	defer cancel()

	var last generation.Update
	for u, err := range s.Send(ctx, in.Message) {
		var streamErr *generation.StreamError
		switch {
		case err == nil, errors.As(err, &streamErr):
			last = u
		case errors.Is(err, generation.ErrBusy):
			h.ErrLog.LogConflict(w, r, "chat busy", err, "Please wait for the current reply to finish.")
			return
		case errors.Is(err, generation.ErrChatUnavailable):
			h.ErrLog.LogUnavailable(w, r, "chat unavailable", err, generation.InitErrorMessage)
			return
		default:
			h.ErrLog.LogBadRequest(w, r, "chat message rejected", err, "Please enter a message.")
			return
		}
	}

	uierrors.WriteJSON(w, http.StatusOK, messageResponse{
		Reply:      last.Text,
		Failed:     last.Failed,
		Transcript: s.Transcript(),
	})
}

// ServeStream upgrades to a websocket. Each {"message": ...} the client sends
// is answered by a stream of update frames ending with one where done is set.
func (h *Handler) ServeStream(w http.ResponseWriter, r *http.Request) {
	id, _, ok := h.current(r)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "no active chat", "No active chat.")
		return
	}

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessage)

	log := h.Log.With(zap.String("chat_id", id))
	log.Debug("chat stream opened")

	for {
		var in inbound
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("chat stream read failed", zap.Error(err))
			}
			return
		}

		// The session may have been ended or evicted since the upgrade.
		s, ok := h.Chats.Get(id)
		if !ok {
			_ = writeFrame(conn, frame{Error: "Chat session has ended."})
			return
		}

		if err := h.streamTurn(r.Context(), conn, s, in.Message); err != nil {
			log.Warn("chat stream write failed", zap.Error(err))
			return
		}
	}
}

func (h *Handler) streamTurn(parent context.Context, conn *websocket.Conn, s *generation.ChatSession, msg string) error {
	ctx, cancel := timeouts.WithTimeout(parent, timeouts.Chat(), h.Log, "chat turn")
	defer cancel()

	for u, err := range s.Send(ctx, msg) {
		f := frame{Update: u}
		var streamErr *generation.StreamError
		if err != nil && !errors.As(err, &streamErr) {
			f = frame{Error: err.Error()}
		}
		if werr := writeFrame(conn, f); werr != nil {
			return werr
		}
	}
	return nil
}

func writeFrame(conn *websocket.Conn, f frame) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(f)
}
