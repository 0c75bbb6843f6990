// Package marketing extracts the allow-listed campaign and click-id
// parameters from a page URL query.
package marketing

import (
	"html"
	"net/url"
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"datalayer/internal/datalayer/models"
	dlstrings "datalayer/pkg/platform/strings"
)

// Params is the fixed allow-list, in wire order.
var Params = []string{
	"utm_source",
	"utm_medium",
	"utm_campaign",
	"utm_term",
	"utm_content",
	"utm_id",
	"gclid",
	"gbraid",
	"wbraid",
	"msclkid",
	"fbclid",
	"ttclid",
	"yclid",
}

var octets = regexp.MustCompile(`%[a-fA-F0-9]{2}`)

// Extractor sanitizes parameter values as plain text. It is safe for
// concurrent use.
type Extractor struct {
	policy *bluemonday.Policy
}

func NewExtractor() *Extractor {
	return &Extractor{policy: bluemonday.StrictPolicy()}
}

// Extract returns the allow-listed parameters of query that are present and
// non-empty after sanitizing, keyed by their prefixed name. The result is
// never nil. Only the first value of a repeated parameter is used.
func (e *Extractor) Extract(query url.Values) models.Marketing {
	out := models.Marketing{}
	for _, name := range Params {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		if clean := e.Sanitize(raw); clean != "" {
			out[models.Key(name)] = clean
		}
	}
	return out
}

// Sanitize strips markup, percent-encoded octets and line breaks from s and
// collapses its whitespace.
func (e *Extractor) Sanitize(s string) string {
	text := html.UnescapeString(e.policy.Sanitize(s))
	text = octets.ReplaceAllString(text, "")
	return dlstrings.CollapseSpaces(text)
}
