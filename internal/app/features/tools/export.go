// internal/app/features/tools/export.go
package tools

import (
	"bytes"
	"mime"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/npoconnect/internal/app/features/errors"
	"github.com/dalemusser/npoconnect/internal/app/system/export"
	"go.uber.org/zap"
)

const defaultExportTitle = "Document"

type exportRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Format  string `json:"format"`
}

// HandleExport returns a generated document as a file download.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	var in exportRequest
	if err := uierrors.DecodeJSON(w, r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad export payload", err, "Invalid request body.")
		return
	}
	if strings.TrimSpace(in.Content) == "" {
		h.ErrLog.LogBadRequest(w, r, "empty export", nil, "There is no content to export.")
		return
	}
	format, err := export.ParseFormat(in.Format)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "unknown export format", err, "Unsupported export format.")
		return
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = defaultExportTitle
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, export.Document{Title: title, Content: in.Content}, format); err != nil {
		h.ErrLog.LogServerError(w, r, "export failed", err, "Could not export the document.")
		return
	}

	name := export.Filename(title, format)
	h.Log.Debug("document exported", zap.String("file", name), zap.Int("bytes", buf.Len()))

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
