package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// ErrUnknownStyle indicates a highlight style chroma does not know.
var ErrUnknownStyle = errors.New("unknown highlight style")

// HTMLConverter abstracts Markdown to HTML fragment conversion.
type HTMLConverter interface {
	ToHTML(content string) (string, error)
}

// Compile-time interface check.
var _ HTMLConverter = (*GoldmarkConverter)(nil)

// ConverterOption configures a GoldmarkConverter.
type ConverterOption func(*converterConfig)

type converterConfig struct {
	unsafeHTML     bool
	highlightStyle string
}

// WithUnsafeHTML lets raw HTML in Markdown pass through to the output.
func WithUnsafeHTML(enabled bool) ConverterOption {
	return func(c *converterConfig) {
		c.unsafeHTML = enabled
	}
}

// WithHighlightStyle switches code blocks from CSS classes to inline styles
// using the named chroma style. An empty name keeps CSS classes.
func WithHighlightStyle(name string) ConverterOption {
	return func(c *converterConfig) {
		c.highlightStyle = name
	}
}

// GoldmarkConverter converts Markdown to HTML fragments using goldmark (pure Go).
// It is safe for concurrent use.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and syntax highlighting.
func NewGoldmarkConverter(opts ...ConverterOption) *GoldmarkConverter {
	cfg := converterConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	hlOpts := []highlighting.Option{
		highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
	}
	if cfg.highlightStyle != "" {
		hlOpts = []highlighting.Option{
			highlighting.WithStyle(cfg.highlightStyle),
			highlighting.WithFormatOptions(chromahtml.WithClasses(false)),
		}
	}

	rendererOpts := []goldmark.Option{}
	if cfg.unsafeHTML {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	md := goldmark.New(append([]goldmark.Option{
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(hlOpts...),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	}, rendererOpts...)...)

	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
func (c *GoldmarkConverter) ToHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(PreprocessMarkdown(content)), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return ConvertMarkPlaceholders(buf.String()), nil
}

// ValidateHighlightStyle reports whether chroma ships a style with this name.
// The empty name is valid and selects CSS classes.
func ValidateHighlightStyle(name string) error {
	if name == "" || slices.Contains(styles.Names(), name) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownStyle, name)
}
