// internal/app/features/organizations/view.go
package organizations

import (
	"net/http"
	"strconv"

	uierrors "github.com/dalemusser/npoconnect/internal/app/features/errors"
	"github.com/dalemusser/npoconnect/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeView returns the detail record for one organization.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	org, ok := h.lookup(w, r)
	if !ok {
		return
	}

	resp := viewResponse{Organization: org, CanDonate: org.CanDonate()}
	if y, ok := org.RegistrationYear(); ok {
		resp.RegistrationYear = y
	}
	uierrors.WriteJSON(w, http.StatusOK, resp)
}

// ServeDonate returns the banking details shown in the donate dialog.
// Organizations without banking details answer 404.
func (h *Handler) ServeDonate(w http.ResponseWriter, r *http.Request) {
	org, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if !org.CanDonate() {
		h.ErrLog.LogNotFound(w, r, "no banking details", "Banking details not available.")
		return
	}

	bank := *org.BankingDetails
	h.Log.Info("donate details requested", zap.Int("org_id", org.ID))
	uierrors.WriteJSON(w, http.StatusOK, donateResponse{
		ID:            org.ID,
		Name:          org.Name,
		Fields:        bank.Fields(),
		ClipboardText: bank.ClipboardText(),
	})
}

// lookup resolves the {id} URL parameter, writing the error response itself
// when it cannot.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (models.Organization, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad organization id", err, "Invalid organization ID.")
		return models.Organization{}, false
	}
	org, ok := h.Orgs.ByID(id)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "organization not found", "Organization not found.")
		return models.Organization{}, false
	}
	return org, true
}
