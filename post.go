package md2blog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-md2blog/internal/dateutil"
	"github.com/alnah/go-md2blog/internal/fileutil"
	"github.com/alnah/go-md2blog/internal/pipeline"
)

// SourceExt is the extension that marks a source file as a post.
const SourceExt = ".md"

// OutputIndex is the file name written inside every page directory.
const OutputIndex = "index.html"

// MarkdownConverter turns Markdown into an HTML fragment.
type MarkdownConverter interface {
	ToHTML(markdown string) (string, error)
}

// Renderer executes a named template with data.
type Renderer interface {
	Render(name string, data any) ([]byte, error)
}

// Post is one blog entry parsed from a source file.
// Rendered HTML is computed on first use and reused afterwards.
type Post struct {
	sourcePath string
	slug       string
	meta       Metadata
	excerpt    string
	body       string
	hasExcerpt bool

	renderedExcerpt func() (string, error)
	renderedBody    func() (string, error)
}

// ReadPost reads and parses the source file at sourcePath, which must be
// inputRoot/<name>.md.
func ReadPost(inputRoot, sourcePath string, conv MarkdownConverter) (*Post, error) {
	data, err := os.ReadFile(sourcePath) // #nosec G304 -- path comes from the input root listing
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSource, err)
	}
	return NewPost(inputRoot, sourcePath, string(data), conv)
}

// NewPost parses text as the contents of sourcePath.
func NewPost(inputRoot, sourcePath, text string, conv MarkdownConverter) (*Post, error) {
	slug, err := Slug(inputRoot, sourcePath)
	if err != nil {
		return nil, err
	}

	doc, err := ParseDocument(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sourcePath, err)
	}

	p := &Post{
		sourcePath: sourcePath,
		slug:       slug,
		meta:       NewMetadata(doc.Header),
		excerpt:    doc.Excerpt,
		body:       doc.Body,
		hasExcerpt: doc.HasExcerpt,
	}
	p.renderedBody = sync.OnceValues(func() (string, error) {
		return p.toHTML(conv, p.body)
	})
	if p.hasExcerpt {
		p.renderedExcerpt = sync.OnceValues(func() (string, error) {
			return p.toHTML(conv, p.excerpt)
		})
	} else {
		p.renderedExcerpt = p.renderedBody
	}
	return p, nil
}

// Slug returns sourcePath relative to inputRoot without the .md extension,
// using forward slashes.
func Slug(inputRoot, sourcePath string) (string, error) {
	rel, err := filepath.Rel(inputRoot, sourcePath)
	if err != nil {
		return "", fmt.Errorf("%w: %s is not inside %s", ErrFormat, sourcePath, inputRoot)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%w: %s is not inside %s", ErrFormat, sourcePath, inputRoot)
	}
	slug, ok := strings.CutSuffix(rel, SourceExt)
	if !ok || slug == "" || strings.HasSuffix(slug, "/") {
		return "", fmt.Errorf("%w: %s has no name before %s", ErrFormat, sourcePath, SourceExt)
	}
	return slug, nil
}

func (p *Post) toHTML(conv MarkdownConverter, text string) (string, error) {
	html, err := conv.ToHTML(strings.TrimSpace(text))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrMarkdown, p.sourcePath, err)
	}
	return html, nil
}

// SourcePath returns the file the post was read from.
func (p *Post) SourcePath() string { return p.sourcePath }

// Slug returns the post's path-derived identifier.
func (p *Post) Slug() string { return p.slug }

// URL returns the site-relative address of the post page.
func (p *Post) URL() string { return "/" + p.slug + "/" }

// Metadata returns the parsed header.
func (p *Post) Metadata() Metadata { return p.meta }

// Excerpt returns the raw excerpt text, or the body when there is none.
func (p *Post) Excerpt() string { return p.excerpt }

// Body returns the raw body text.
func (p *Post) Body() string { return p.body }

// HasExcerpt reports whether the source separated an excerpt from the body.
func (p *Post) HasExcerpt() bool { return p.hasExcerpt }

// BodyClasses returns the body_classes header value, or "".
func (p *Post) BodyClasses() string { return p.meta.BodyClasses }

// Timestamp parses the timestamp header.
func (p *Post) Timestamp() (time.Time, error) {
	if p.meta.Timestamp == "" {
		return time.Time{}, fmt.Errorf("%w: %s: %q", ErrMissingMetadata, p.sourcePath, KeyTimestamp)
	}
	t, err := dateutil.ParseTimestamp(p.meta.Timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %w", ErrTimestamp, p.sourcePath, err)
	}
	return t, nil
}

// RenderedExcerpt returns the excerpt as HTML.
func (p *Post) RenderedExcerpt() (string, error) { return p.renderedExcerpt() }

// RenderedBody returns the body as HTML.
func (p *Post) RenderedBody() (string, error) { return p.renderedBody() }

// Title returns the first non-empty of: the title header, the first <h1>
// of the rendered excerpt, the first <h1> of the rendered body, the slug.
func (p *Post) Title() (string, error) {
	if p.meta.Title != "" {
		return p.meta.Title, nil
	}
	for _, rendered := range []func() (string, error){p.renderedExcerpt, p.renderedBody} {
		html, err := rendered()
		if err != nil {
			return "", err
		}
		if h := pipeline.FirstHeading(html); h != "" {
			return h, nil
		}
	}
	return p.slug, nil
}

// WriteOutput renders the post template into outputRoot/<slug>/index.html.
// The slug directory must not exist yet.
func (p *Post) WriteOutput(outputRoot string, r Renderer, site Site) (string, error) {
	// Surface converter failures as such rather than as template errors.
	if _, err := p.RenderedBody(); err != nil {
		return "", err
	}
	if _, err := p.RenderedExcerpt(); err != nil {
		return "", err
	}

	data, err := renderTemplate(r, TemplatePost, PostPage{Site: site, Post: p})
	if err != nil {
		return "", fmt.Errorf("%s: %w", p.sourcePath, err)
	}

	dir := filepath.Join(outputRoot, filepath.FromSlash(p.slug))
	return writeIndex(dir, data)
}

// writeIndex creates dir exclusively and writes data to dir/index.html.
func writeIndex(dir string, data []byte) (string, error) {
	if err := os.Mkdir(dir, fileutil.DirPermissions); err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("%w: %s", ErrOutputExists, dir)
		}
		return "", fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	path := filepath.Join(dir, OutputIndex)
	if err := os.WriteFile(path, data, fileutil.FilePermissions); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return path, nil
}

func renderTemplate(r Renderer, name string, data any) ([]byte, error) {
	out, err := r.Render(name, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplate, name, err)
	}
	return out, nil
}
