package md2blog

import "time"

// Template names looked up in the theme.
const (
	TemplatePost = "post.html"
	TemplateList = "list.html"
	TemplateFeed = "feed.atom"
)

// FeedFile is the feed's file name inside the output root.
const FeedFile = "feed.atom"

// Site describes the blog as a whole.
type Site struct {
	Title       string
	URL         string // Absolute base URL, used by the feed; may be empty
	Author      string
	Description string
}

// PostPage is the data passed to the post template.
type PostPage struct {
	Site Site
	Post *Post
}

// ListPage is the data passed to the list template.
// An empty PreviousURL or NextURL means there is no such page.
type ListPage struct {
	Site        Site
	Posts       []*Post
	PageNumber  int
	PreviousURL string
	NextURL     string
}

// FeedData is the data passed to the feed template.
type FeedData struct {
	Site    Site
	Posts   []*Post
	Updated time.Time
}
