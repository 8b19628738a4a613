package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FirstHeading returns the text of the first <h1> element in an HTML
// fragment, with nested tags stripped and entities decoded.
// It returns "" when the fragment has no level-1 heading or the heading is
// blank.
func FirstHeading(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))

	inside := false
	var text strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			// EOF or malformed input; an unterminated heading still counts.
			return strings.TrimSpace(text.String())
		case html.StartTagToken:
			if tok := z.Token(); tok.DataAtom == atom.H1 {
				inside = true
			}
		case html.EndTagToken:
			if inside && z.Token().DataAtom == atom.H1 {
				if s := strings.TrimSpace(text.String()); s != "" {
					return s
				}
				inside = false
				text.Reset()
			}
		case html.TextToken:
			if inside {
				text.Write(z.Text())
			}
		}
	}
}
