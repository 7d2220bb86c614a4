// internal/app/features/organizations/types.go
package organizations

import (
	"github.com/dalemusser/npoconnect/internal/app/system/directory"
	"github.com/dalemusser/npoconnect/internal/domain/models"
)

// listResponse is one page of the directory plus the filter choices.
type listResponse struct {
	directory.View
	Facets directory.FacetSets `json:"facets"`
}

// viewResponse is the detail modal for a single organization.
type viewResponse struct {
	models.Organization
	RegistrationYear int  `json:"registrationYear,omitempty"`
	CanDonate        bool `json:"canDonate"`
}

// donateResponse is the donate dialog.
type donateResponse struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	Fields        []models.Field `json:"fields"`
	ClipboardText string         `json:"clipboardText"`
}
