package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Directories inside a theme.
const (
	stylesDir    = "styles"
	templatesDir = "templates"
)

//go:embed styles/*.css templates/*
var theme embed.FS

// EmbeddedLoader serves the default theme compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns styles/<name>.css.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateStyleName(name); err != nil {
		return "", err
	}
	return readEmbedded(path.Join(stylesDir, name+".css"), ErrStyleNotFound, name)
}

// LoadTemplate returns templates/<name>; name includes its extension.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	return readEmbedded(path.Join(templatesDir, name), ErrTemplateNotFound, name)
}

// Styles lists the built-in stylesheet names in lexical order.
func (e *EmbeddedLoader) Styles() []string {
	matches, err := fs.Glob(theme, stylesDir+"/*.css")
	if err != nil {
		return nil
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = strings.TrimSuffix(path.Base(m), ".css")
	}
	return names
}

func readEmbedded(p string, notFound error, name string) (string, error) {
	data, err := theme.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	return string(data), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
