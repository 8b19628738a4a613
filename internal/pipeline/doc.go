// Package pipeline implements the Markdown-to-HTML stage of a site build.
//
// The stage runs in three steps:
//   - Markdown preprocessing (line normalization, ==highlight== syntax)
//   - Markdown to HTML fragment conversion via Goldmark
//   - Post-processing of placeholders into <mark> elements
//
// FirstHeading scans a rendered fragment for its first level-1 heading and
// backs the title fallback chain of a post. RewriteLinks maps link and
// image references in rendered HTML, which the feed uses to make them
// absolute. Template rendering and page
// layout live elsewhere; this package only produces HTML fragments.
package pipeline
