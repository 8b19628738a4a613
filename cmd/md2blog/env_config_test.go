package main

// Notes:
// - loadEnvConfig: we test every variable and that malformed numbers and
//   durations are ignored rather than reported.
// - warnUnknownEnvVars: we test typo detection and that known vars don't warn.
// - applyEnvConfig: we test that set variables replace file values and unset
//   ones leave them alone.
// - Tests use t.Setenv() which prevents t.Parallel().
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2blog/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("MD2BLOG_CONFIG", "/etc/site.yaml")
		t.Setenv("MD2BLOG_INPUT_DIR", "/in")
		t.Setenv("MD2BLOG_OUTPUT_DIR", "/out")
		t.Setenv("MD2BLOG_TEMPLATES_DIR", "/theme")
		t.Setenv("MD2BLOG_STYLE", "dark")
		t.Setenv("MD2BLOG_PER_PAGE", "10")
		t.Setenv("MD2BLOG_SITE_URL", "https://example.com")
		t.Setenv("MD2BLOG_IMAGE_TIMEOUT", "1m")

		got := loadEnvConfig()
		want := envConfig{
			ConfigPath:   "/etc/site.yaml",
			InputDir:     "/in",
			OutputDir:    "/out",
			TemplatesDir: "/theme",
			Style:        "dark",
			PerPage:      10,
			SiteURL:      "https://example.com",
			ImageTimeout: time.Minute,
		}
		if *got != want {
			t.Errorf("loadEnvConfig() = %+v, want %+v", *got, want)
		}
	})

	t.Run("malformed values are ignored", func(t *testing.T) {
		t.Setenv("MD2BLOG_PER_PAGE", "many")
		t.Setenv("MD2BLOG_IMAGE_TIMEOUT", "soon")

		got := loadEnvConfig()
		if got.PerPage != 0 {
			t.Errorf("PerPage = %d, want 0", got.PerPage)
		}
		if got.ImageTimeout != 0 {
			t.Errorf("ImageTimeout = %v, want 0", got.ImageTimeout)
		}
	})

	t.Run("non-positive values are ignored", func(t *testing.T) {
		t.Setenv("MD2BLOG_PER_PAGE", "0")
		t.Setenv("MD2BLOG_IMAGE_TIMEOUT", "-5s")

		got := loadEnvConfig()
		if got.PerPage != 0 || got.ImageTimeout != 0 {
			t.Errorf("got PerPage=%d ImageTimeout=%v, want zero values", got.PerPage, got.ImageTimeout)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("MD2BLOG_OUTPUT", "/out")
	t.Setenv("MD2BLOG_INPUT_DIR", "/in")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "unknown environment variable MD2BLOG_OUTPUT ") {
		t.Errorf("missing warning for MD2BLOG_OUTPUT: %q", out)
	}
	if strings.Contains(out, "MD2BLOG_INPUT_DIR") {
		t.Errorf("known variable should not warn: %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Override behavior
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("set values replace config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Input.Dir = "posts"
		applyEnvConfig(&envConfig{
			InputDir:     "/in",
			OutputDir:    "/out",
			TemplatesDir: "/theme",
			Style:        "dark",
			PerPage:      7,
			SiteURL:      "https://example.com",
			ImageTimeout: time.Minute,
		}, cfg)

		if cfg.Input.Dir != "/in" || cfg.Output.Dir != "/out" || cfg.Templates.Dir != "/theme" {
			t.Errorf("dirs = %q %q %q", cfg.Input.Dir, cfg.Output.Dir, cfg.Templates.Dir)
		}
		if cfg.Templates.Style != "dark" || cfg.Pagination.PerPage != 7 {
			t.Errorf("style = %q perPage = %d", cfg.Templates.Style, cfg.Pagination.PerPage)
		}
		if cfg.Site.URL != "https://example.com" || cfg.Images.Timeout != time.Minute {
			t.Errorf("url = %q timeout = %v", cfg.Site.URL, cfg.Images.Timeout)
		}
	})

	t.Run("empty values keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Input.Dir = "posts"
		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Input.Dir != "posts" {
			t.Errorf("Input.Dir = %q, want posts", cfg.Input.Dir)
		}
		if cfg.Pagination.PerPage != config.DefaultPerPage {
			t.Errorf("PerPage = %d, want %d", cfg.Pagination.PerPage, config.DefaultPerPage)
		}
	})
}
