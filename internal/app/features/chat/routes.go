// internal/app/features/chat/routes.go
package chat

import "github.com/go-chi/chi/v5"

// Routes mounts the chat assistant under "/chat".
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleStart)
	r.Delete("/", h.HandleEnd)
	r.Get("/transcript", h.ServeTranscript)
	r.Post("/messages", h.HandleMessage)
	r.Get("/ws", h.ServeStream)

	return r
}
