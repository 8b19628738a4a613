// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the first searched location under the user config dir.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/site.yaml or run 'md2blog init'"

	for _, p := range searchedPaths {
		if strings.Contains(p, "md2blog") {
			hint += "; or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForSlugCollision returns a hint for an output directory that already exists.
func ForSlugCollision() string {
	return format("two sources map to the same URL; rename one (post names must not be page numbers, static files must not be index.html or feed.atom)")
}

// ForFormat returns a hint describing the expected source layout.
func ForFormat() string {
	return format("expected 'key: value' header lines, then a '---' line, an optional excerpt and '---', then the body")
}

// ForMissingTimestamp returns a hint for posts without a timestamp.
func ForMissingTimestamp() string {
	return format("add a header line such as 'timestamp: 2024-01-31T09:00:00Z'")
}

// ForTemplateNotFound returns hints for missing templates.
func ForTemplateNotFound(dir string, required []string) string {
	var hints []string
	if dir != "" {
		hints = append(hints, "templates dir: "+dir)
	}
	if len(required) > 0 {
		hints = append(hints, "required: "+strings.Join(required, ", "))
	}
	return formatHints(hints)
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForTimeout returns a hint about increasing the download timeout.
func ForTimeout() string {
	return format("for slow hosts, raise images.timeout in the config")
}

// ForImageFormat returns a hint listing supported image formats.
func ForImageFormat() string {
	return format("supported formats: JPEG, PNG, GIF, BMP, TIFF, WebP")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
