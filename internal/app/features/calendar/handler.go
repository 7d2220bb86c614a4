// internal/app/features/calendar/handler.go
package calendar

import (
	"errors"
	"net/http"
	"strconv"

	uierrors "github.com/dalemusser/npoconnect/internal/app/features/errors"
	"github.com/dalemusser/npoconnect/internal/app/store/tasks"
	"github.com/dalemusser/npoconnect/internal/app/system/timeouts"
	"github.com/dalemusser/npoconnect/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the task and deadline calendar.
type Handler struct {
	Tasks  *tasks.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(store *tasks.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Tasks: store, ErrLog: errLog, Log: logger}
}

// Routes mounts the calendar under "/calendar".
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/tasks", h.ServeList)
	r.Post("/tasks", h.HandleAdd)
	r.Delete("/tasks/{id}", h.HandleDelete)
	return r
}

var rejections = map[error]string{
	tasks.ErrTitleRequired:   "Please enter a title.",
	tasks.ErrDueDateRequired: "Please choose a due date.",
	tasks.ErrInvalidKind:     "Type must be task or grant.",
}

type listResponse struct {
	Tasks []models.Task `json:"tasks"`
}

// ServeList returns every task ordered by due date.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	uierrors.WriteJSON(w, http.StatusOK, listResponse{Tasks: h.Tasks.List()})
}

// HandleAdd creates a task. Persistence failures are not reported; the task
// is kept for the life of the process.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var in tasks.NewTask
	if err := uierrors.DecodeJSON(w, r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad task payload", err, "Invalid request body.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "task add")
	defer cancel()

	t, err := h.Tasks.Add(ctx, in)
	if err != nil {
		for sentinel, msg := range rejections {
			if errors.Is(err, sentinel) {
				h.ErrLog.LogBadRequest(w, r, "task rejected", err, msg)
				return
			}
		}
		h.ErrLog.LogServerError(w, r, "task add failed", err, "Could not add the task.")
		return
	}

	h.Log.Info("task added", zap.Int64("task_id", t.ID), zap.String("type", string(t.Kind)))
	uierrors.WriteJSON(w, http.StatusCreated, t)
}

// HandleDelete removes a task.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad task id", err, "Invalid task ID.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "task delete")
	defer cancel()

	if err := h.Tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, tasks.ErrNotFound) {
			h.ErrLog.LogNotFound(w, r, "task not found", "Task not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "task delete failed", err, "Could not delete the task.")
		return
	}

	h.Log.Info("task deleted", zap.Int64("task_id", id))
	w.WriteHeader(http.StatusNoContent)
}
