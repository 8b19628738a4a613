// Package render executes theme templates for a site build.
//
// Templates ending in .html are parsed with html/template together with the
// theme's layout.html, so a page can call {{ template "layout.html" . }} and
// fill the "title" and "content" blocks. Templates ending in .atom or .xml
// are parsed with text/template and escape values through the xml func.
package render

import (
	"bytes"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"path/filepath"
	"sync"
	texttemplate "text/template"

	"github.com/alnah/go-md2blog/internal/assets"
)

// Sentinel errors for template rendering.
var (
	ErrTemplate        = errors.New("template rendering failed")
	ErrUnsupportedKind = errors.New("unsupported template type")
)

// Loader supplies template sources and stylesheets.
type Loader interface {
	LoadTemplate(name string) (string, error)
	LoadStyle(name string) (string, error)
}

// Option configures a TemplateRenderer.
type Option func(*TemplateRenderer)

// WithStyle selects the stylesheet exposed by the stylesheet template func.
func WithStyle(name string) Option {
	return func(r *TemplateRenderer) {
		if name != "" {
			r.style = name
		}
	}
}

// TemplateRenderer renders named templates from a Loader.
// Parsed templates are cached; it is safe for concurrent use.
type TemplateRenderer struct {
	loader Loader
	style  string

	mu    sync.Mutex
	cache map[string]func(*bytes.Buffer, any) error

	css func() (string, error)
}

// New creates a TemplateRenderer over loader.
func New(loader Loader, opts ...Option) *TemplateRenderer {
	r := &TemplateRenderer{
		loader: loader,
		style:  assets.DefaultStyleName,
		cache:  make(map[string]func(*bytes.Buffer, any) error),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.css = sync.OnceValues(func() (string, error) {
		return r.loader.LoadStyle(r.style)
	})
	return r
}

// Render executes the template called name with data.
func (r *TemplateRenderer) Render(name string, data any) ([]byte, error) {
	exec, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := exec(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplate, name, err)
	}
	return buf.Bytes(), nil
}

// Preload parses the named templates and the stylesheet so that theme
// errors surface before any output is written.
func (r *TemplateRenderer) Preload(names ...string) error {
	for _, name := range names {
		if _, err := r.lookup(name); err != nil {
			return err
		}
	}
	if _, err := r.css(); err != nil {
		return fmt.Errorf("%w: stylesheet %q: %w", ErrTemplate, r.style, err)
	}
	return nil
}

func (r *TemplateRenderer) lookup(name string) (func(*bytes.Buffer, any) error, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if exec, ok := r.cache[name]; ok {
		return exec, nil
	}

	exec, err := r.parse(name)
	if err != nil {
		return nil, err
	}
	r.cache[name] = exec
	return exec, nil
}

func (r *TemplateRenderer) parse(name string) (func(*bytes.Buffer, any) error, error) {
	src, err := r.loader.LoadTemplate(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}

	switch filepath.Ext(name) {
	case ".html":
		return r.parseHTML(name, src)
	case ".atom", ".xml":
		return r.parseText(name, src)
	default:
		return nil, fmt.Errorf("%w: %w: %s", ErrTemplate, ErrUnsupportedKind, name)
	}
}

func (r *TemplateRenderer) parseHTML(name, src string) (func(*bytes.Buffer, any) error, error) {
	t := htmltemplate.New(name).Funcs(r.htmlFuncs()).Option("missingkey=error")

	if name != assets.LayoutTemplate {
		layout, err := r.loader.LoadTemplate(assets.LayoutTemplate)
		switch {
		case err == nil:
			if _, err := t.New(assets.LayoutTemplate).Parse(layout); err != nil {
				return nil, fmt.Errorf("%w: parsing %s: %v", ErrTemplate, assets.LayoutTemplate, err)
			}
		case !errors.Is(err, assets.ErrTemplateNotFound):
			return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
		}
	}

	if _, err := t.Parse(src); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrTemplate, name, err)
	}

	return func(buf *bytes.Buffer, data any) error {
		return t.ExecuteTemplate(buf, name, data)
	}, nil
}

func (r *TemplateRenderer) parseText(name, src string) (func(*bytes.Buffer, any) error, error) {
	t, err := texttemplate.New(name).Funcs(textFuncs()).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrTemplate, name, err)
	}
	return func(buf *bytes.Buffer, data any) error {
		return t.ExecuteTemplate(buf, name, data)
	}, nil
}
