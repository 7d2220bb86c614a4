// internal/app/system/markup/markup.go
//
// Package markup turns the constrained Markdown subset returned by the
// completion endpoint into display HTML and clipboard text. It is a fixed
// sequence of pattern substitutions, not a Markdown parser: lists, links and
// tables pass through as literal characters.
package markup

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

var (
	boldRule     = rule{regexp.MustCompile(`\*\*(.*?)\*\*`), "<strong>$1</strong>"}
	italicRule   = rule{regexp.MustCompile(`\*(.*?)\*`), "<em>$1</em>"}
	h3Rule       = rule{regexp.MustCompile(`###\s(.*?)\n`), "<h3>$1</h3>"}
	h2Rule       = rule{regexp.MustCompile(`##\s(.*?)\n`), "<h2>$1</h2>"}
	h1Rule       = rule{regexp.MustCompile(`#\s(.*?)\n`), "<h1>$1</h1>"}
	numberedRule = rule{regexp.MustCompile(`(\n\d\.\s)`), "<br/><br/>$1"}

	boldMarkers    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	headingMarkers = regexp.MustCompile(`###\s?|##\s?|#\s?`)
)

// Order matters: bold before italics, deeper headings before shallower.
var (
	formatRules   = []rule{boldRule, h3Rule, h2Rule, h1Rule}
	documentRules = []rule{boldRule, h3Rule, h2Rule, h1Rule, numberedRule}
	donorRules    = []rule{boldRule, h3Rule, h2Rule}
	chatRules     = []rule{boldRule, italicRule}
)

func apply(raw string, rules []rule, br string) string {
	out := raw
	for _, r := range rules {
		out = r.re.ReplaceAllString(out, r.repl)
	}
	return strings.ReplaceAll(out, "\n", br)
}

// Format converts bold and heading markers and turns remaining newlines
// into <br/>. Apply it once; formatting already formatted text is undefined.
func Format(raw string) string {
	return apply(raw, formatRules, "<br/>")
}

// Document is Format for generated documents: numbered items additionally
// get a blank line before them.
func Document(raw string) string {
	return apply(raw, documentRules, "<br/>")
}

// DonorMatch is the donor list variant: bold and h3/h2 headings only, so
// numbered donors are not spaced apart.
func DonorMatch(raw string) string {
	return apply(raw, donorRules, "<br/>")
}

// Chat is the variant used for chat bubbles: bold, then single-asterisk
// italics, then newlines as <br />.
func Chat(raw string) string {
	return apply(raw, chatRules, "<br />")
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements("strong", "em", "h1", "h2", "h3", "br")
		policy = p
	})
	return policy
}

// Sanitize strips everything except the elements the formatters emit. The
// completion endpoint is untrusted, so formatted text goes through here
// before it is served as HTML.
func Sanitize(html string) string {
	return sanitizer().Sanitize(html)
}

// RenderDocument is Sanitize(Document(raw)).
func RenderDocument(raw string) string {
	return Sanitize(Document(raw))
}

// RenderDonorMatch is Sanitize(DonorMatch(raw)).
func RenderDonorMatch(raw string) string {
	return Sanitize(DonorMatch(raw))
}

// RenderChat is Sanitize(Chat(raw)).
func RenderChat(raw string) string {
	return Sanitize(Chat(raw))
}

// PlainText removes bold and heading markers for clipboard copies.
func PlainText(raw string) string {
	out := boldMarkers.ReplaceAllString(raw, "$1")
	return headingMarkers.ReplaceAllString(out, "")
}
