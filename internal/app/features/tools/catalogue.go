// internal/app/features/tools/catalogue.go
package tools

import (
	"net/http"

	uierrors "github.com/dalemusser/npoconnect/internal/app/features/errors"
)

// Tool is one entry on the dashboard.
type Tool struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`
	// RequiresAI is set for tools that call the completion endpoint.
	RequiresAI bool `json:"requiresAI"`
}

// Catalogue lists the dashboard tools in display order.
var Catalogue = []Tool{
	{
		ID:          "wizard",
		Title:       "Business Proposal Generator",
		Description: "Craft persuasive proposals for funding applications.",
		Path:        "/tools/proposal",
		RequiresAI:  true,
	},
	{
		ID:          "monthly-report",
		Title:       "Auto-Monthly Reporting",
		Description: "Generate professional monthly reports from your key metrics.",
		Path:        "/tools/monthly-report",
		RequiresAI:  true,
	},
	{
		ID:          "donor-match",
		Title:       "Donor Matching Assistant",
		Description: "Find potential corporate donors and foundations in SA.",
		Path:        "/tools/donor-match",
		RequiresAI:  true,
	},
	{
		ID:          "chatbot",
		Title:       "AI Chatbot Assistant",
		Description: "Get instant advice on NPO management and strategy.",
		Path:        "/chat",
		RequiresAI:  true,
	},
	{
		ID:          "calendar",
		Title:       "Task & Deadline Calendar",
		Description: "Track grant deadlines and important tasks.",
		Path:        "/calendar/tasks",
	},
}

type catalogueResponse struct {
	Title      string `json:"title"`
	Tools      []Tool `json:"tools"`
	Generation bool   `json:"generation"`
}

// ServeCatalogue returns the dashboard. Generation reports whether the AI
// tools are usable.
func (h *Handler) ServeCatalogue(w http.ResponseWriter, r *http.Request) {
	uierrors.WriteJSON(w, http.StatusOK, catalogueResponse{
		Title:      "NPO Dashboard",
		Tools:      Catalogue,
		Generation: h.Gen.Configured(),
	})
}
