// internal/app/features/organizations/handler.go
package organizations

import (
	uierrors "github.com/dalemusser/npoconnect/internal/app/features/errors"
	"github.com/dalemusser/npoconnect/internal/app/dataset"
	"github.com/dalemusser/npoconnect/internal/app/system/paging"
	"go.uber.org/zap"
)

// Handler serves the organization directory.
type Handler struct {
	Orgs     *dataset.Provider
	PageSize int
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

// NewHandler constructs a directory handler. A non-positive pageSize falls
// back to paging.PageSize.
func NewHandler(orgs *dataset.Provider, pageSize int, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if pageSize <= 0 {
		pageSize = paging.PageSize
	}
	return &Handler{
		Orgs:     orgs,
		PageSize: pageSize,
		ErrLog:   errLog,
		Log:      logger,
	}
}
