package md2blog

import (
	"log/slog"
	"time"
)

// Option configures a Builder.
type Option func(*Builder)

// builderConfig holds internal configuration for Builder.
type builderConfig struct {
	perPage int
	site    Site
}

// WithPerPage sets the number of posts per index page.
// Panics if n < 1 (programmer error, similar to time.NewTicker).
func WithPerPage(n int) Option {
	if n < 1 {
		panic("md2blog: WithPerPage count must be positive")
	}
	return func(b *Builder) {
		b.cfg.perPage = n
	}
}

// WithSite sets the site-wide values passed to every template.
func WithSite(site Site) Option {
	return func(b *Builder) {
		b.cfg.site = site
	}
}

// WithRenderer replaces the embedded theme renderer.
func WithRenderer(r Renderer) Option {
	return func(b *Builder) {
		if r != nil {
			b.renderer = r
		}
	}
}

// WithConverter replaces the goldmark Markdown converter.
func WithConverter(c MarkdownConverter) Option {
	return func(b *Builder) {
		if c != nil {
			b.converter = c
		}
	}
}

// WithLogger sets the logger for per-file progress messages.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithClock sets the time source used when the feed has no posts.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}
