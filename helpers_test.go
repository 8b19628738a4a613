package md2blog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

// fakeConverter turns "# x" lines into <h1>x</h1> and other non-empty lines
// into paragraphs, recording every input it receives.
type fakeConverter struct {
	mu     sync.Mutex
	inputs []string
	err    error
}

func (f *fakeConverter) ToHTML(md string) (string, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, md)
	f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}

	var b strings.Builder
	for _, line := range strings.Split(md, "\n") {
		switch {
		case strings.HasPrefix(line, "# "):
			fmt.Fprintf(&b, "<h1>%s</h1>\n", strings.TrimPrefix(line, "# "))
		case strings.TrimSpace(line) == "":
		default:
			fmt.Fprintf(&b, "<p>%s</p>\n", line)
		}
	}
	return b.String(), nil
}

func (f *fakeConverter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inputs)
}

// fakeRenderer renders a one-line summary of the bindings it receives.
type fakeRenderer struct {
	failOn string
	calls  []string
}

var errFakeRender = errors.New("fake render failure")

func (f *fakeRenderer) Render(name string, data any) ([]byte, error) {
	f.calls = append(f.calls, name)
	if name == f.failOn {
		return nil, errFakeRender
	}

	switch d := data.(type) {
	case PostPage:
		title, err := d.Post.Title()
		if err != nil {
			return nil, err
		}
		return []byte("post:" + d.Post.Slug() + ":" + title), nil
	case ListPage:
		return []byte(fmt.Sprintf("list:%d:%s:%s:%s", d.PageNumber, slugs(d.Posts), d.PreviousURL, d.NextURL)), nil
	case FeedData:
		return []byte("feed:" + slugs(d.Posts) + ":" + d.Updated.Format(time.RFC3339)), nil
	default:
		return nil, fmt.Errorf("unexpected bindings %T", data)
	}
}

// preloadRenderer is a fakeRenderer whose templates fail to load.
type preloadRenderer struct {
	fakeRenderer
	err error
}

func (p *preloadRenderer) Preload(names ...string) error {
	return p.err
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func slugs(posts []*Post) string {
	names := make([]string, len(posts))
	for i, p := range posts {
		names[i] = p.Slug()
	}
	return strings.Join(names, ",")
}

// newTestPost parses text as source/<name>.md with a fresh fakeConverter.
func newTestPost(t *testing.T, name, text string) *Post {
	t.Helper()
	p, err := NewPost("source", filepath.Join("source", name+".md"), text, &fakeConverter{})
	if err != nil {
		t.Fatalf("NewPost(%q) error = %v", name, err)
	}
	return p
}

// makePosts returns n posts named p01, p02, ... in that order.
func makePosts(t *testing.T, n int) []*Post {
	t.Helper()
	posts := make([]*Post, n)
	for i := range n {
		posts[i] = newTestPost(t, fmt.Sprintf("p%02d", i+1), "timestamp: 2024-01-01\n---\nbody\n")
	}
	return posts
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
