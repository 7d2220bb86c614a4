// internal/app/system/generation/orchestrator.go
package generation

import (
	"context"
	"fmt"

	"github.com/dalemusser/npoconnect/internal/app/system/aiclient"
	"github.com/dalemusser/npoconnect/internal/domain/models"
	"go.uber.org/zap"
)

// Result is a generated document. Sources is only set for donor matching.
type Result struct {
	Kind    Kind              `json:"kind"`
	Text    string            `json:"text"`
	Sources []models.Citation `json:"sources,omitempty"`
}

// Orchestrator builds prompts, calls the completion endpoint and classifies
// failures. A nil client yields a disabled orchestrator whose every call
// returns ErrNotConfigured.
type Orchestrator struct {
	client aiclient.Client
	model  string
	log    *zap.Logger
}

// New returns an Orchestrator over client. model may be empty.
func New(client aiclient.Client, model string, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{client: client, model: model, log: logger}
}

// Configured reports whether a client is available.
func (o *Orchestrator) Configured() bool {
	return o != nil && o.client != nil
}

// failure context per kind, rendered as "Failed to <context> ...".
var failureContext = map[Kind]string{
	KindProposal:      "proposal generation",
	KindMonthlyReport: "monthly report generation",
	KindDonorMatch:    "donor matching",
}

// Generate dispatches req to the matching tool. A nil request, typed or
// untyped, is rejected with ErrInvalidRequest.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	switch r := req.(type) {
	case ProposalData:
		return o.Proposal(ctx, r)
	case *ProposalData:
		if r != nil {
			return o.Proposal(ctx, *r)
		}
	case MonthlyReportData:
		return o.MonthlyReport(ctx, r)
	case *MonthlyReportData:
		if r != nil {
			return o.MonthlyReport(ctx, *r)
		}
	case DonorMatchData:
		return o.DonorMatch(ctx, r)
	case *DonorMatchData:
		if r != nil {
			return o.DonorMatch(ctx, *r)
		}
	case nil:
	default:
		return Result{}, fmt.Errorf("%w: unknown request type %T", ErrInvalidRequest, req)
	}
	return Result{}, fmt.Errorf("%w: nil %T", ErrInvalidRequest, req)
}

// Proposal generates a funding proposal.
func (o *Orchestrator) Proposal(ctx context.Context, d ProposalData) (Result, error) {
	return o.complete(ctx, d, false)
}

// MonthlyReport generates a monthly activity report.
func (o *Orchestrator) MonthlyReport(ctx context.Context, d MonthlyReportData) (Result, error) {
	return o.complete(ctx, d, false)
}

// DonorMatch asks for potential donors with web-search grounding and
// returns the cited sources alongside the text.
func (o *Orchestrator) DonorMatch(ctx context.Context, d DonorMatchData) (Result, error) {
	return o.complete(ctx, d, true)
}

func (o *Orchestrator) complete(ctx context.Context, req Request, webSearch bool) (Result, error) {
	if !o.Configured() {
		return Result{}, ErrNotConfigured
	}
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	prompt, err := Prompt(req)
	if err != nil {
		return Result{}, err
	}

	kind := req.Kind()
	resp, err := o.client.Complete(ctx, aiclient.Request{
		Model:     o.model,
		Prompt:    prompt,
		WebSearch: webSearch,
	})
	if err == nil && resp.Text == "" {
		err = aiclient.ErrEmptyResponse
	}
	if err != nil {
		o.log.Error("completion failed",
			zap.String("kind", string(kind)),
			zap.Error(err))
		return Result{}, &FailedError{Context: failureContext[kind], Cause: err}
	}

	res := Result{Kind: kind, Text: resp.Text}
	if webSearch {
		res.Sources = ExtractCitations(resp.GroundingChunks)
	}
	return res, nil
}

// ExtractCitations collects {title, uri} pairs from grounding chunks in
// order. Chunks without a web reference or URI are dropped and repeated
// URIs are kept once.
func ExtractCitations(chunks []aiclient.GroundingChunk) []models.Citation {
	out := make([]models.Citation, 0, len(chunks))
	seen := make(map[string]struct{}, len(chunks))
	for _, c := range chunks {
		if c.Web == nil || c.Web.URI == "" {
			continue
		}
		if _, dup := seen[c.Web.URI]; dup {
			continue
		}
		seen[c.Web.URI] = struct{}{}
		title := c.Web.Title
		if title == "" {
			title = c.Web.URI
		}
		out = append(out, models.Citation{Title: title, URI: c.Web.URI})
	}
	return out
}
