package render

import (
	htmltemplate "html/template"
	"net/url"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/alnah/go-md2blog/internal/dateutil"
	"github.com/alnah/go-md2blog/internal/pipeline"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeXML escapes s for XML text and attribute values.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// AbsURL joins a site base URL with an absolute path. An empty base
// returns the path unchanged so sites can be served from any host.
func AbsURL(base, p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if base == "" {
		return p
	}
	u, err := url.Parse(base)
	if err != nil {
		return p
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + p
	return u.String()
}

// AbsHTML makes local links and image sources in an HTML fragment absolute
// under base, for readers that show the fragment outside the site.
// pageURL is the root-relative URL the fragment was published at; relative
// references resolve against it. An empty base returns fragment unchanged.
func AbsHTML(base, pageURL, fragment string) (string, error) {
	if base == "" {
		return fragment, nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return fragment, nil
	}
	page := &url.URL{Path: pageURL}

	return pipeline.RewriteLinks(fragment, func(ref string) string {
		if !pipeline.IsLocalRef(ref) {
			return ref
		}
		r, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		resolved := page.ResolveReference(r)

		u := *baseURL
		u.Path = strings.TrimSuffix(baseURL.Path, "/") + resolved.Path
		u.RawPath = ""
		u.RawQuery = resolved.RawQuery
		u.Fragment = resolved.Fragment
		return u.String()
	})
}

func rfc3339(t time.Time) string {
	return dateutil.FormatTimestamp(t)
}

func commonFuncs() map[string]any {
	return map[string]any{
		"absHTML": AbsHTML,
		"absURL":  AbsURL,
		"date":    dateutil.Format,
		"rfc3339": rfc3339,
		"xml":     EscapeXML,
	}
}

func (r *TemplateRenderer) htmlFuncs() htmltemplate.FuncMap {
	funcs := htmltemplate.FuncMap(commonFuncs())
	funcs["safeHTML"] = func(s string) htmltemplate.HTML {
		return htmltemplate.HTML(s) // #nosec G203 -- converter output
	}
	funcs["stylesheet"] = func() (htmltemplate.CSS, error) {
		css, err := r.css()
		return htmltemplate.CSS(css), err // #nosec G203 -- theme-owned stylesheet
	}
	return funcs
}

func textFuncs() texttemplate.FuncMap {
	return texttemplate.FuncMap(commonFuncs())
}
