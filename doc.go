// Package md2blog builds a static blog from a directory of Markdown files.
//
// # Quick Start
//
// Build the directory "source" into "output" with the embedded theme:
//
//	b := md2blog.NewBuilder("source", "output",
//	    md2blog.WithSite(md2blog.Site{Title: "Notes", URL: "https://example.com"}),
//	)
//	report, err := b.Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Posts, "posts")
//
// # Source Files
//
// Every *.md file directly inside the input directory is a post. A post
// starts with "key: value" header lines, followed by a line containing only
// "---" and the body:
//
//	timestamp: 2024-03-01T08:00:00Z
//	title: Optional title
//	---
//	An optional excerpt, shown on index pages.
//	---
//	The body.
//
// Without the second "---" line the whole body doubles as the excerpt.
// Recognized keys are timestamp (required), title, body_classes, and
// exclude_from_list. Other keys are kept in Metadata.Extra, and templates
// read any key with Metadata.Value.
//
// A post without a title header takes the first <h1> of its excerpt, then
// of its body, then its slug.
//
// Every other file is copied unchanged. Subdirectories and hidden files are
// skipped.
//
// # Output
//
// The output directory is emptied first, then receives:
//
//	<slug>/index.html   one per post
//	<n>/index.html      index pages, newest posts first
//	index.html          copy of 1/index.html
//	feed.atom           Atom feed of listed posts
//	<file>              copied static files
//
// Posts with any exclude_from_list value, "false" included, get a page but
// appear on no index page and not in the feed.
//
// # Configuration
//
// Use functional options to customize the builder:
//
//	b := md2blog.NewBuilder("source", "output",
//	    md2blog.WithPerPage(10),
//	    md2blog.WithRenderer(myRenderer),
//	    md2blog.WithConverter(myConverter),
//	    md2blog.WithLogger(slog.Default()),
//	)
//
// Renderer receives PostPage, ListPage, and FeedData values for the
// post.html, list.html, and feed.atom templates.
//
// # Errors
//
// Errors wrap sentinel values and name the offending file:
//
//	_, err := b.Build()
//	switch {
//	case errors.Is(err, md2blog.ErrFormat):
//	    // bad separators or header line
//	case errors.Is(err, md2blog.ErrMissingMetadata):
//	    // no timestamp
//	case errors.Is(err, md2blog.ErrOutputExists):
//	    // two sources map to the same output directory
//	}
package md2blog
