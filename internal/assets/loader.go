package assets

// Template file names the build renders.
const (
	LayoutTemplate = "layout.html"
	PostTemplate   = "post.html"
	ListTemplate   = "list.html"
	FeedTemplate   = "feed.atom"
)

// DefaultStyleName is the name of the built-in stylesheet.
const DefaultStyleName = "default"

// AssetLoader defines the contract for loading theme templates and styles.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads a template by file name (e.g. "post.html").
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}
