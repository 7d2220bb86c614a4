// internal/app/system/export/export.go
package export

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strings"

	"github.com/dalemusser/npoconnect/internal/app/system/markup"
)

// ErrExport marks a failed document export.
var ErrExport = errors.New("export failed")

// ErrUnknownFormat is returned for an unsupported Format.
var ErrUnknownFormat = errors.New("unknown export format")

// Format selects the rendition of an exported document.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat maps s to a Format. Empty means HTML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatHTML:
		return FormatHTML, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatText, "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Ext returns the file extension for f.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatText:
		return "txt"
	default:
		return "html"
	}
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatText:
		return "text/plain; charset=utf-8"
	default:
		return "text/html; charset=utf-8"
	}
}

// Document is a generated document to export.
type Document struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

var whitespace = regexp.MustCompile(`\s+`)

// Filename names the download: whitespace runs in title become a single
// hyphen and the "-npo-connect" suffix is appended.
func Filename(title string, f Format) string {
	return whitespace.ReplaceAllString(title, "-") + "-npo-connect." + f.Ext()
}

var page = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="document">{{.Body}}</div>
</body>
</html>
`))

// Write renders doc to w in the requested format. Any failure wraps
// ErrExport.
func Write(w io.Writer, doc Document, f Format) error {
	var err error
	switch f {
	case FormatHTML:
		err = page.Execute(w, struct {
			Title string
			Body  template.HTML
		}{
			Title: doc.Title,
			// Sanitized to the formatter's own tags.
			Body: template.HTML(markup.RenderDocument(doc.Content)),
		})
	case FormatMarkdown:
		_, err = fmt.Fprintf(w, "# %s\n\n%s\n", doc.Title, doc.Content)
	case FormatText:
		_, err = fmt.Fprintf(w, "%s\n\n%s\n", doc.Title, markup.PlainText(doc.Content))
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	return nil
}
