package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2blog/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath   string        // MD2BLOG_CONFIG: config file name or path
	InputDir     string        // MD2BLOG_INPUT_DIR: source directory
	OutputDir    string        // MD2BLOG_OUTPUT_DIR: output directory
	TemplatesDir string        // MD2BLOG_TEMPLATES_DIR: theme directory
	Style        string        // MD2BLOG_STYLE: stylesheet name
	PerPage      int           // MD2BLOG_PER_PAGE: posts per index page
	SiteURL      string        // MD2BLOG_SITE_URL: absolute base URL
	ImageTimeout time.Duration // MD2BLOG_IMAGE_TIMEOUT: download timeout
}

// knownEnvVars lists valid MD2BLOG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2BLOG_CONFIG":        true,
	"MD2BLOG_INPUT_DIR":     true,
	"MD2BLOG_OUTPUT_DIR":    true,
	"MD2BLOG_TEMPLATES_DIR": true,
	"MD2BLOG_STYLE":         true,
	"MD2BLOG_PER_PAGE":      true,
	"MD2BLOG_SITE_URL":      true,
	"MD2BLOG_IMAGE_TIMEOUT": true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:   os.Getenv("MD2BLOG_CONFIG"),
		InputDir:     os.Getenv("MD2BLOG_INPUT_DIR"),
		OutputDir:    os.Getenv("MD2BLOG_OUTPUT_DIR"),
		TemplatesDir: os.Getenv("MD2BLOG_TEMPLATES_DIR"),
		Style:        os.Getenv("MD2BLOG_STYLE"),
		SiteURL:      os.Getenv("MD2BLOG_SITE_URL"),
	}

	if perPage := os.Getenv("MD2BLOG_PER_PAGE"); perPage != "" {
		if n, err := strconv.Atoi(perPage); err == nil && n > 0 {
			cfg.PerPage = n
		}
	}

	if timeout := os.Getenv("MD2BLOG_IMAGE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.ImageTimeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2BLOG_* variables.
// Helps catch typos like MD2BLOG_OUTPUT instead of MD2BLOG_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MD2BLOG_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables replace config file values; CLI flags are applied later
// and win over both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.Dir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.TemplatesDir != "" {
		cfg.Templates.Dir = env.TemplatesDir
	}
	if env.Style != "" {
		cfg.Templates.Style = env.Style
	}
	if env.PerPage > 0 {
		cfg.Pagination.PerPage = env.PerPage
	}
	if env.SiteURL != "" {
		cfg.Site.URL = env.SiteURL
	}
	if env.ImageTimeout > 0 {
		cfg.Images.Timeout = env.ImageTimeout
	}
}
