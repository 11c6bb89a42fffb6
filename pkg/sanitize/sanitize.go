package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()

	blockBreaks = strings.NewReplacer("</p>", " ", "<br>", " ", "<br/>", " ", "<br />", " ", "</div>", " ", "</li>", " ")
)

// RichText keeps safe formatting markup in user content before it is stored.
func RichText(s string) string {
	return strings.TrimSpace(ugc.Sanitize(s))
}

// PlainText strips all markup and normalizes whitespace. Used for search documents.
func PlainText(s string) string {
	s = blockBreaks.Replace(s)
	s = html.UnescapeString(strict.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}
