// internal/app/features/tools/handler.go
package tools

import (
	uierrors "github.com/dalemusser/npoconnect/internal/app/features/errors"
	"github.com/dalemusser/npoconnect/internal/app/system/generation"
	"go.uber.org/zap"
)

// Handler serves the tools dashboard, the document generators and export.
type Handler struct {
	Gen    *generation.Orchestrator
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(gen *generation.Orchestrator, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Gen:    gen,
		ErrLog: errLog,
		Log:    logger,
	}
}
