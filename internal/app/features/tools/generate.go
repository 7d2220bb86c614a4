// internal/app/features/tools/generate.go
package tools

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/npoconnect/internal/app/features/errors"
	"github.com/dalemusser/npoconnect/internal/app/system/generation"
	"github.com/dalemusser/npoconnect/internal/app/system/limits"
	"github.com/dalemusser/npoconnect/internal/app/system/markup"
	"github.com/dalemusser/npoconnect/internal/app/system/timeouts"
	"github.com/dalemusser/npoconnect/internal/domain/models"
	"go.uber.org/zap"
)

// documentResponse is a generated document in every form the client shows.
type documentResponse struct {
	Kind      generation.Kind   `json:"kind"`
	Text      string            `json:"text"`
	HTML      string            `json:"html"`
	PlainText string            `json:"plainText"`
	Sources   []models.Citation `json:"sources,omitempty"`
}

func (h *Handler) HandleProposal(w http.ResponseWriter, r *http.Request) {
	var in generation.ProposalData
	h.generate(w, r, &in)
}

func (h *Handler) HandleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	var in generation.MonthlyReportData
	h.generate(w, r, &in)
}

// HandleDonorMatch answers with the cited web sources as well as the text.
func (h *Handler) HandleDonorMatch(w http.ResponseWriter, r *http.Request) {
	var in generation.DonorMatchData
	h.generate(w, r, &in)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, req generation.Request) {
	if !h.Gen.Configured() {
		h.ErrLog.LogUnavailable(w, r, "generation disabled", generation.ErrNotConfigured, generation.ErrNotConfigured.Error())
		return
	}
	if err := uierrors.DecodeJSONLimit(w, r, req, limits.MaxGenerationBody); err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad generation payload", err, "Invalid request body.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Generation(), h.Log, string(req.Kind()))
	defer cancel()

	res, err := h.Gen.Generate(ctx, req)
	if err != nil {
		h.writeGenerationError(w, r, err)
		return
	}

	h.Log.Info("document generated",
		zap.String("kind", string(res.Kind)),
		zap.Int("chars", len(res.Text)),
		zap.Int("sources", len(res.Sources)))

	uierrors.WriteJSON(w, http.StatusOK, documentResponse{
		Kind:      res.Kind,
		Text:      res.Text,
		HTML:      renderHTML(res),
		PlainText: markup.PlainText(res.Text),
		Sources:   res.Sources,
	})
}

// renderHTML formats a result for display. Donor lists skip the numbered
// item spacing used for proposals and reports.
func renderHTML(res generation.Result) string {
	if res.Kind == generation.KindDonorMatch {
		return markup.RenderDonorMatch(res.Text)
	}
	return markup.RenderDocument(res.Text)
}

func (h *Handler) writeGenerationError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		invalid *generation.ValidationError
		failed  *generation.FailedError
	)
	switch {
	case errors.As(err, &invalid):
		h.ErrLog.LogBadRequest(w, r, "generation request incomplete", err, invalid.Error())
	case errors.As(err, &failed):
		h.ErrLog.LogBadGateway(w, r, "generation failed", failed.Cause, failed.Error())
	case errors.Is(err, generation.ErrNotConfigured):
		h.ErrLog.LogUnavailable(w, r, "generation disabled", err, err.Error())
	default:
		h.ErrLog.LogServerError(w, r, "generation error", err, "Something went wrong generating the document.")
	}
}
