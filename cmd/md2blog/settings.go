package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	md2blog "github.com/alnah/go-md2blog"
	"github.com/alnah/go-md2blog/internal/assets"
	"github.com/alnah/go-md2blog/internal/config"
	"github.com/alnah/go-md2blog/internal/pipeline"
	"github.com/alnah/go-md2blog/internal/render"
)

// loadConfig resolves the config from the flag, then MD2BLOG_CONFIG, then
// a file named md2blog.yaml in the usual places, then built-in defaults.
// Environment overrides are applied before returning.
func loadConfig(flagValue string, env *envConfig) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = env.ConfigPath
	}

	var (
		cfg *config.Config
		err error
	)
	if name == "" {
		cfg, err = config.LoadConfig(config.DefaultName)
		if errors.Is(err, config.ErrConfigNotFound) {
			cfg, err = config.DefaultConfig(), nil
		}
	} else {
		cfg, err = config.LoadConfig(name)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	applyEnvConfig(env, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}
	return cfg, nil
}

// mergeSiteFlags applies explicitly set flags over cfg and revalidates.
func mergeSiteFlags(f *siteFlags, cfg *config.Config) error {
	if f.input != "" {
		cfg.Input.Dir = f.input
	}
	if f.output != "" {
		cfg.Output.Dir = f.output
	}
	if f.templates != "" {
		cfg.Templates.Dir = f.templates
	}
	if f.style != "" {
		cfg.Templates.Style = f.style
	}
	if f.perPage != 0 {
		cfg.Pagination.PerPage = f.perPage
	}
	if f.siteURL != "" {
		cfg.Site.URL = f.siteURL
	}
	if f.unsafeHTML {
		cfg.Markdown.UnsafeHTML = true
	}
	return cfg.Validate()
}

// newLogger returns a text logger on w. Quiet shows warnings and errors,
// verbose shows debug messages, and the default shows warnings only so
// that per-file messages need --verbose.
func newLogger(w io.Writer, f commonFlags) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case f.quiet:
		level = slog.LevelError
	case f.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// siteFromConfig converts config site values into template bindings.
func siteFromConfig(cfg *config.Config) md2blog.Site {
	return md2blog.Site{
		Title:       cfg.Site.Title,
		URL:         cfg.Site.URL,
		Author:      cfg.Site.Author,
		Description: cfg.Site.Description,
	}
}

// newBuilder wires the theme, converter, and logger for cfg.
func newBuilder(cfg *config.Config, logger *slog.Logger, env *Environment) (*md2blog.Builder, error) {
	resolver, err := assets.NewAssetResolver(cfg.Templates.Dir)
	if err != nil {
		return nil, fmt.Errorf("templates dir %s: %w", cfg.Templates.Dir, err)
	}

	renderer := render.New(resolver, render.WithStyle(cfg.Templates.Style))
	converter := pipeline.NewGoldmarkConverter(
		pipeline.WithUnsafeHTML(cfg.Markdown.UnsafeHTML),
		pipeline.WithHighlightStyle(cfg.Markdown.HighlightStyle),
	)

	return md2blog.NewBuilder(cfg.Input.Dir, cfg.Output.Dir,
		md2blog.WithPerPage(cfg.Pagination.PerPage),
		md2blog.WithSite(siteFromConfig(cfg)),
		md2blog.WithRenderer(renderer),
		md2blog.WithConverter(converter),
		md2blog.WithLogger(logger),
		md2blog.WithClock(env.Now),
	), nil
}
