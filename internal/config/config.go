// Package config loads and validates the YAML site configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2blog/internal/assets"
	"github.com/alnah/go-md2blog/internal/fileutil"
	"github.com/alnah/go-md2blog/internal/pipeline"
	"github.com/alnah/go-md2blog/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxAuthorLength      = 100
	MaxDescriptionLength = 500
	MaxURLLength         = 2048
	MaxPathLength        = 4096
)

// Defaults.
const (
	DefaultInputDir     = "source"
	DefaultOutputDir    = "output"
	DefaultPerPage      = 5
	DefaultImageSize    = 1000
	DefaultImageTimeout = 30 * time.Second
	MaxImageSize        = 10000
)

// AppName names the user config directory.
const AppName = "md2blog"

// DefaultName is the config name looked up when none is given.
const DefaultName = "md2blog"

// Config holds all configuration for a site build.
type Config struct {
	Site       SiteConfig       `yaml:"site"`
	Input      DirConfig        `yaml:"input"`
	Output     DirConfig        `yaml:"output"`
	Templates  TemplatesConfig  `yaml:"templates"`
	Pagination PaginationConfig `yaml:"pagination"`
	Markdown   MarkdownConfig   `yaml:"markdown"`
	Images     ImagesConfig     `yaml:"images"`
}

// SiteConfig describes the site as a whole. It is exposed to templates.
type SiteConfig struct {
	Title       string `yaml:"title"`
	URL         string `yaml:"url"` // Absolute base URL for feed links (empty = root-relative)
	Author      string `yaml:"author"`
	Description string `yaml:"description"`
}

// DirConfig names a directory.
type DirConfig struct {
	Dir string `yaml:"dir"`
}

// TemplatesConfig selects the theme.
type TemplatesConfig struct {
	Dir   string `yaml:"dir"`   // Empty = embedded default theme
	Style string `yaml:"style"` // Stylesheet name under styles/ (default: "default")
}

// PaginationConfig controls index pages.
type PaginationConfig struct {
	PerPage int `yaml:"perPage"` // Posts per index page (default: 5)
}

// MarkdownConfig controls Markdown rendering.
type MarkdownConfig struct {
	UnsafeHTML     bool   `yaml:"unsafeHTML"`     // Pass raw HTML through
	HighlightStyle string `yaml:"highlightStyle"` // Chroma style for inline colors (empty = CSS classes)
}

// ImagesConfig controls the import command.
type ImagesConfig struct {
	MaxWidth  int           `yaml:"maxWidth"`
	MaxHeight int           `yaml:"maxHeight"`
	Timeout   time.Duration `yaml:"timeout"` // Download timeout for URLs
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills zero values. An explicit zero in YAML is therefore the
// same as leaving the key out.
func (c *Config) applyDefaults() {
	if c.Input.Dir == "" {
		c.Input.Dir = DefaultInputDir
	}
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
	if c.Templates.Style == "" {
		c.Templates.Style = assets.DefaultStyleName
	}
	if c.Pagination.PerPage == 0 {
		c.Pagination.PerPage = DefaultPerPage
	}
	if c.Images.MaxWidth == 0 {
		c.Images.MaxWidth = DefaultImageSize
	}
	if c.Images.MaxHeight == 0 {
		c.Images.MaxHeight = DefaultImageSize
	}
	if c.Images.Timeout == 0 {
		c.Images.Timeout = DefaultImageTimeout
	}
}

// Validate checks ranges, formats, and field lengths.
// Called automatically by LoadConfig, but available for callers that
// construct or modify a Config (flag and environment overrides).
func (c *Config) Validate() error {
	if err := validateFieldLength("site.title", c.Site.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.author", c.Site.Author, MaxAuthorLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.description", c.Site.Description, MaxDescriptionLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.url", c.Site.URL, MaxURLLength); err != nil {
		return err
	}
	if c.Site.URL != "" {
		u, err := url.Parse(c.Site.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: site.url: must be an absolute http(s) URL, got %q", ErrInvalidValue, c.Site.URL)
		}
	}

	for _, f := range []struct{ name, value string }{
		{"input.dir", c.Input.Dir},
		{"output.dir", c.Output.Dir},
		{"templates.dir", c.Templates.Dir},
	} {
		if err := validateFieldLength(f.name, f.value, MaxPathLength); err != nil {
			return err
		}
	}
	if c.Input.Dir == "" || c.Output.Dir == "" {
		return fmt.Errorf("%w: input.dir and output.dir are required", ErrInvalidValue)
	}
	// Cleaning the output root must never reach the sources.
	if inside, err := fileutil.Within(c.Input.Dir, c.Output.Dir); err != nil || inside {
		return fmt.Errorf("%w: output.dir %q must not be or contain input.dir %q", ErrInvalidValue, c.Output.Dir, c.Input.Dir)
	}

	if err := assets.ValidateStyleName(c.Templates.Style); err != nil {
		return fmt.Errorf("%w: templates.style: %v", ErrInvalidValue, err)
	}
	if c.Pagination.PerPage < 1 {
		return fmt.Errorf("%w: pagination.perPage: must be at least 1, got %d", ErrInvalidValue, c.Pagination.PerPage)
	}
	if err := pipeline.ValidateHighlightStyle(c.Markdown.HighlightStyle); err != nil {
		return fmt.Errorf("%w: markdown.highlightStyle: %v", ErrInvalidValue, err)
	}

	if c.Images.MaxWidth < 1 || c.Images.MaxWidth > MaxImageSize {
		return fmt.Errorf("%w: images.maxWidth: must be between 1 and %d, got %d", ErrInvalidValue, MaxImageSize, c.Images.MaxWidth)
	}
	if c.Images.MaxHeight < 1 || c.Images.MaxHeight > MaxImageSize {
		return fmt.Errorf("%w: images.maxHeight: must be between 1 and %d, got %d", ErrInvalidValue, MaxImageSize, c.Images.MaxHeight)
	}
	if c.Images.Timeout < 0 {
		return fmt.Errorf("%w: images.timeout: must be positive, got %s", ErrInvalidValue, c.Images.Timeout)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.ReadFileStrict(configPath, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	return &cfg, nil
}

// Marshal renders cfg as YAML, for writing a starter config.
func Marshal(cfg *Config) ([]byte, error) {
	return yamlutil.Marshal(cfg)
}

// SearchPaths returns the files tried for a config name, in order:
// <name>.yaml and <name>.yml in the working directory, then in
// <user config dir>/md2blog/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
