// Package assets provides the templates and stylesheet of a site theme.
// Assets can be loaded from embedded files or a custom directory.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (default theme)
//	    ├── FilesystemLoader  - loads from a theme directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the renderer. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when an asset is
// missing, so a theme directory may override a single template.
//
// # Directory Structure
//
//	{basePath}/
//	├── layout.html           # Shared page chrome, defines "content" slot
//	├── post.html             # One post page
//	├── list.html             # One pagination page
//	├── feed.atom             # Atom feed
//	└── styles/
//	    └── {name}.css        # Stylesheet exposed to templates
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
