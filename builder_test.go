package md2blog

// Notes:
// - Builds use fakeRenderer and fakeConverter; the embedded theme and goldmark
//   are exercised in builder_integration_test.go.
// - Unwritable output roots are not tested because permission behavior
//   differs when tests run as root.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

var fixedClock = func() time.Time { return time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC) }

// newSite creates input and output directories with the given source files.
func newSite(t *testing.T, files map[string]string) (in, out string) {
	t.Helper()
	root := t.TempDir()
	in, out = filepath.Join(root, "source"), filepath.Join(root, "output")
	if err := os.Mkdir(in, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	for name, content := range files {
		writeFile(t, in, name, content)
	}
	return in, out
}

func newTestBuilder(in, out string, r Renderer, opts ...Option) *Builder {
	base := []Option{WithRenderer(r), WithConverter(&fakeConverter{}), WithClock(fixedClock)}
	return NewBuilder(in, out, append(base, opts...)...)
}

// ---------------------------------------------------------------------------
// TestBuilder_Build - Full pipeline
// ---------------------------------------------------------------------------

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	in, out := newSite(t, map[string]string{
		"old.md":    "timestamp: 2020-01-01\n---\n# Old",
		"new.md":    "timestamp: 2022-06-01\n---\n# New",
		"mid.md":    "timestamp: 2021-03-01\ntitle: Middle\n---\nteaser\n---\nbody",
		"about.md":  "timestamp: 2019-05-05\nexclude_from_list: true\n---\n# About",
		"style.css": "body{}",
		".hidden":   "secret",
	})
	if err := os.Mkdir(filepath.Join(in, "drafts"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(out, "stale"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	writeFile(t, out, "leftover.html", "old")

	report, err := newTestBuilder(in, out, &fakeRenderer{}, WithPerPage(2)).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if report.Posts != 4 || report.Listed != 3 || report.Pages != 2 || report.Assets != 1 {
		t.Errorf("report = %+v", report)
	}
	wantSkipped := []string{filepath.Join(in, ".hidden"), filepath.Join(in, "drafts")}
	if !slices.Equal(report.Skipped, wantSkipped) {
		t.Errorf("Skipped = %v, want %v", report.Skipped, wantSkipped)
	}

	wantFiles := map[string]string{
		"new/index.html":   "post:new:New",
		"mid/index.html":   "post:mid:Middle",
		"old/index.html":   "post:old:Old",
		"about/index.html": "post:about:About",
		"1/index.html":     "list:1:new,mid::/2/",
		"2/index.html":     "list:2:old:/:",
		"index.html":       "list:1:new,mid::/2/",
		"feed.atom":        "feed:new,mid,old:2022-06-01T00:00:00Z",
		"style.css":        "body{}",
	}
	for name, want := range wantFiles {
		if got := readFile(t, filepath.Join(out, filepath.FromSlash(name))); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}

	for _, gone := range []string{"stale", "leftover.html", ".hidden", "drafts"} {
		if _, err := os.Stat(filepath.Join(out, gone)); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("%s should not exist in output", gone)
		}
	}
}

func TestBuilder_Build_EmptyInput(t *testing.T) {
	t.Parallel()

	in, out := newSite(t, nil)

	report, err := newTestBuilder(in, out, &fakeRenderer{}).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if report.Posts != 0 || report.Pages != 1 {
		t.Errorf("report = %+v", report)
	}
	if got := readFile(t, filepath.Join(out, "index.html")); got != "list:1:::" {
		t.Errorf("index.html = %q", got)
	}
	if got := readFile(t, filepath.Join(out, "feed.atom")); got != "feed::2030-01-02T03:04:05Z" {
		t.Errorf("feed.atom = %q", got)
	}
}

func TestBuilder_Build_CreatesMissingOutput(t *testing.T) {
	t.Parallel()

	in, _ := newSite(t, map[string]string{"a.md": "timestamp: 2024-01-01\n---\nx"})
	out := filepath.Join(t.TempDir(), "fresh")

	if _, err := newTestBuilder(in, out, &fakeRenderer{}).Build(); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "a", "index.html")); err != nil {
		t.Errorf("post page missing: %v", err)
	}
}

func TestBuilder_Build_Reproducible(t *testing.T) {
	t.Parallel()

	// Equal timestamps keep file name order.
	in, out := newSite(t, map[string]string{
		"b.md": "timestamp: 2024-01-01\n---\nx",
		"a.md": "timestamp: 2024-01-01\n---\nx",
		"c.md": "timestamp: 2024-01-01\n---\nx",
	})

	for range 2 {
		if _, err := newTestBuilder(in, out, &fakeRenderer{}).Build(); err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if got := readFile(t, filepath.Join(out, "index.html")); got != "list:1:a,b,c::" {
			t.Errorf("index.html = %q", got)
		}
	}
}

// ---------------------------------------------------------------------------
// TestBuilder_Build_Errors - Any failure aborts
// ---------------------------------------------------------------------------

func TestBuilder_Build_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		files    map[string]string
		renderer Renderer
		perPage  int
		wantErr  error
		wantIn   string
	}{
		{
			name:    "malformed post",
			files:   map[string]string{"ok.md": "timestamp: 2024-01-01\n---\nx", "broken.md": "no separator"},
			wantErr: ErrFormat,
			wantIn:  "broken.md",
		},
		{
			name:    "missing timestamp",
			files:   map[string]string{"untimed.md": "title: x\n---\nx"},
			wantErr: ErrMissingMetadata,
			wantIn:  "untimed.md",
		},
		{
			name:    "bad timestamp",
			files:   map[string]string{"when.md": "timestamp: soon\n---\nx"},
			wantErr: ErrTimestamp,
			wantIn:  "when.md",
		},
		{
			name: "post named like an index page",
			files: map[string]string{
				"2.md": "timestamp: 2024-01-02\n---\nx",
				"a.md": "timestamp: 2024-01-01\n---\nx",
			},
			perPage: 1,
			wantErr: ErrOutputExists,
		},
		{
			name:    "static file named like the root index",
			files:   map[string]string{"a.md": "timestamp: 2024-01-01\n---\nx", "index.html": "<p>mine</p>"},
			wantErr: ErrOutputExists,
			wantIn:  "index.html",
		},
		{
			name:    "static file named like the feed",
			files:   map[string]string{"feed.atom": "<feed/>"},
			wantErr: ErrOutputExists,
			wantIn:  "feed.atom",
		},
		{
			name:     "list template fails",
			files:    map[string]string{"a.md": "timestamp: 2024-01-01\n---\nx"},
			renderer: &fakeRenderer{failOn: TemplateList},
			wantErr:  ErrTemplate,
		},
		{
			name:     "feed template fails",
			files:    map[string]string{"a.md": "timestamp: 2024-01-01\n---\nx"},
			renderer: &fakeRenderer{failOn: TemplateFeed},
			wantErr:  ErrTemplate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in, out := newSite(t, tt.files)
			r := tt.renderer
			if r == nil {
				r = &fakeRenderer{}
			}
			var opts []Option
			if tt.perPage > 0 {
				opts = append(opts, WithPerPage(tt.perPage))
			}

			_, err := newTestBuilder(in, out, r, opts...).Build()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Build() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantIn != "" && !strings.Contains(err.Error(), tt.wantIn) {
				t.Errorf("error %q does not name %s", err, tt.wantIn)
			}
		})
	}
}

func TestBuilder_Build_MissingInput(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, err := newTestBuilder(filepath.Join(root, "nope"), filepath.Join(root, "out"), &fakeRenderer{}).Build()
	if !errors.Is(err, ErrReadSource) {
		t.Errorf("Build() error = %v, want ErrReadSource", err)
	}
}

func TestBuilder_Build_UnsafeOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		out  func(in string) string
	}{
		{name: "output is input", out: func(in string) string { return in }},
		{name: "output is parent of input", out: func(in string) string { return filepath.Dir(in) }},
		{name: "output is parent with trailing dot", out: func(in string) string { return filepath.Join(in, "..", ".") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in, _ := newSite(t, map[string]string{"a.md": "timestamp: 2024-01-01\n---\nx"})
			_, err := newTestBuilder(in, tt.out(in), &fakeRenderer{}).Build()
			if !errors.Is(err, ErrUnsafeOutput) {
				t.Fatalf("Build() error = %v, want ErrUnsafeOutput", err)
			}
			if got := readFile(t, filepath.Join(in, "a.md")); !strings.HasPrefix(got, "timestamp:") {
				t.Errorf("source was modified: %q", got)
			}
		})
	}
}

func TestBuilder_Build_PreloadFailureKeepsOutput(t *testing.T) {
	t.Parallel()

	in, out := newSite(t, map[string]string{"a.md": "timestamp: 2024-01-01\n---\nx"})
	if err := os.Mkdir(out, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	writeFile(t, out, "keep.html", "previous build")

	r := &preloadRenderer{err: errors.New("template post.html not found")}
	_, err := newTestBuilder(in, out, r).Build()
	if !errors.Is(err, ErrTemplate) {
		t.Fatalf("Build() error = %v, want ErrTemplate", err)
	}
	if got := readFile(t, filepath.Join(out, "keep.html")); got != "previous build" {
		t.Errorf("output was cleaned before templates were checked")
	}
}

// ---------------------------------------------------------------------------
// TestSortPosts / TestListedPosts
// ---------------------------------------------------------------------------

func TestSortPosts(t *testing.T) {
	t.Parallel()

	posts := []*Post{
		newTestPost(t, "a", "timestamp: 2020-01-01\n---\nx"),
		newTestPost(t, "b", "timestamp: 2022-06-01\n---\nx"),
		newTestPost(t, "c", "timestamp: 2021-03-01\n---\nx"),
	}
	if err := SortPosts(posts); err != nil {
		t.Fatalf("SortPosts() error = %v", err)
	}
	if got := slugs(posts); got != "b,c,a" {
		t.Errorf("order = %s, want b,c,a", got)
	}
}

func TestSortPosts_MixedZones(t *testing.T) {
	t.Parallel()

	posts := []*Post{
		newTestPost(t, "utc", "timestamp: 2024-01-01T10:00:00Z\n---\nx"),
		newTestPost(t, "east", "timestamp: 2024-01-01T11:30:00+02:00\n---\nx"),
	}
	if err := SortPosts(posts); err != nil {
		t.Fatalf("SortPosts() error = %v", err)
	}
	// 11:30+02:00 is 09:30Z, earlier than 10:00Z.
	if got := slugs(posts); got != "utc,east" {
		t.Errorf("order = %s, want utc,east", got)
	}
}

func TestListedPosts(t *testing.T) {
	t.Parallel()

	posts := []*Post{
		newTestPost(t, "a", "timestamp: 2024-01-01\n---\nx"),
		newTestPost(t, "page", "timestamp: 2024-01-01\nexclude_from_list: true\n---\nx"),
		newTestPost(t, "b", "timestamp: 2024-01-01\nexclude_from_list: false\n---\nx"),
		newTestPost(t, "c", "timestamp: 2024-01-01\n---\nx"),
	}
	// Any value hides the post, "false" included.
	if got := slugs(ListedPosts(posts)); got != "a,c" {
		t.Errorf("ListedPosts() = %s, want a,c", got)
	}
}

func TestWithPerPage_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithPerPage(0) did not panic")
		}
	}()
	WithPerPage(0)
}
