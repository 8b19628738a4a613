package main

import (
	"errors"
	"os"

	md2blog "github.com/alnah/go-md2blog"
	"github.com/alnah/go-md2blog/internal/assets"
	"github.com/alnah/go-md2blog/internal/config"
	"github.com/alnah/go-md2blog/internal/hints"
	"github.com/alnah/go-md2blog/internal/media"
	"github.com/alnah/go-md2blog/internal/render"
)

// Exit codes for md2blog CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful command
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or theme
	ExitIO       = 3 // File not found, permission denied, output collision
	ExitContent  = 4 // Malformed source file
	ExitExternal = 5 // Markdown, template, or image processing failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Source content errors (exit 4)
	if errors.Is(err, md2blog.ErrFormat) ||
		errors.Is(err, md2blog.ErrMissingMetadata) ||
		errors.Is(err, md2blog.ErrTimestamp) {
		return ExitContent
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2blog.ErrReadSource) ||
		errors.Is(err, md2blog.ErrWriteOutput) ||
		errors.Is(err, md2blog.ErrCopyAsset) ||
		errors.Is(err, md2blog.ErrOutputExists) ||
		errors.Is(err, media.ErrWrite) {
		return ExitIO
	}

	// Usage/config/theme errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, md2blog.ErrUnsafeOutput) ||
		errors.Is(err, ErrConfigExists) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) {
		return ExitUsage
	}

	// External processing errors (exit 5)
	if errors.Is(err, md2blog.ErrMarkdown) ||
		errors.Is(err, md2blog.ErrTemplate) ||
		errors.Is(err, render.ErrTemplate) ||
		errors.Is(err, media.ErrProcess) ||
		errors.Is(err, media.ErrFetch) ||
		errors.Is(err, media.ErrTooLarge) {
		return ExitExternal
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(config.DefaultName))
	case errors.Is(err, md2blog.ErrMissingMetadata):
		return hints.ForMissingTimestamp()
	case errors.Is(err, md2blog.ErrFormat):
		return hints.ForFormat()
	case errors.Is(err, md2blog.ErrOutputExists):
		return hints.ForSlugCollision()
	case errors.Is(err, md2blog.ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, assets.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.NewEmbeddedLoader().Styles())
	case errors.Is(err, assets.ErrTemplateNotFound):
		return hints.ForTemplateNotFound("", []string{
			md2blog.TemplatePost, md2blog.TemplateList, md2blog.TemplateFeed,
		})
	case errors.Is(err, media.ErrProcess):
		return hints.ForImageFormat()
	case errors.Is(err, media.ErrFetch) && !errors.Is(err, os.ErrNotExist):
		return hints.ForTimeout()
	}
	return ""
}
