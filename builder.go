package md2blog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-md2blog/internal/assets"
	"github.com/alnah/go-md2blog/internal/fileutil"
	"github.com/alnah/go-md2blog/internal/pipeline"
	"github.com/alnah/go-md2blog/internal/render"
)

// Compile-time interface checks.
var (
	_ MarkdownConverter = (*pipeline.GoldmarkConverter)(nil)
	_ Renderer          = (*render.TemplateRenderer)(nil)
)

// preloader is implemented by renderers that can check their templates
// before anything is written.
type preloader interface {
	Preload(names ...string) error
}

// Report summarizes a finished build.
type Report struct {
	Posts   int      // Post pages written
	Listed  int      // Posts on index pages and in the feed
	Pages   int      // Index pages written, not counting the root copy
	Assets  int      // Static files copied
	Skipped []string // Input entries ignored
}

// Builder turns an input directory into a site in an output directory.
//
// A Builder is not safe for concurrent use, and two builds must not target
// the same output directory at the same time.
type Builder struct {
	inputDir  string
	outputDir string
	cfg       builderConfig
	renderer  Renderer
	converter MarkdownConverter
	logger    *slog.Logger
	now       func() time.Time
}

// NewBuilder creates a Builder reading inputDir and writing outputDir.
// Without options it uses the embedded theme and the goldmark converter.
func NewBuilder(inputDir, outputDir string, opts ...Option) *Builder {
	b := &Builder{
		inputDir:  inputDir,
		outputDir: outputDir,
		cfg:       builderConfig{perPage: DefaultPerPage},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.converter == nil {
		b.converter = pipeline.NewGoldmarkConverter()
	}
	if b.renderer == nil {
		b.renderer = render.New(assets.NewEmbeddedLoader())
	}

	return b
}

// Build runs the whole pipeline: clean the output root, read every input
// entry, write post pages, copy static files, then write index pages and
// the feed for listed posts. It stops at the first error, and refuses to
// start when the output root is or contains the input directory.
func (b *Builder) Build() (*Report, error) {
	if inside, err := fileutil.Within(b.inputDir, b.outputDir); err != nil || inside {
		return nil, fmt.Errorf("%w: %s holds %s", ErrUnsafeOutput, b.outputDir, b.inputDir)
	}

	if p, ok := b.renderer.(preloader); ok {
		if err := p.Preload(TemplatePost, TemplateList, TemplateFeed); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
		}
	}

	if err := fileutil.CleanDir(b.outputDir); err != nil {
		return nil, fmt.Errorf("%w: cleaning %s: %w", ErrWriteOutput, b.outputDir, err)
	}
	b.logger.Info("removed output contents", slog.String("dir", b.outputDir))

	report := &Report{}
	posts, statics, err := b.discover(report)
	if err != nil {
		return nil, err
	}

	if err := SortPosts(posts); err != nil {
		return nil, err
	}

	for _, p := range posts {
		path, err := p.WriteOutput(b.outputDir, b.renderer, b.cfg.site)
		if err != nil {
			return nil, err
		}
		report.Posts++
		b.logger.Info("created file", slog.String("path", path))
	}

	for _, a := range statics {
		if err := a.Copy(); err != nil {
			return nil, err
		}
		report.Assets++
		b.logger.Info("copied file", slog.String("path", a.SourcePath()))
	}

	listed := ListedPosts(posts)
	report.Listed = len(listed)

	written, err := WritePages(b.outputDir, Paginate(listed, b.cfg.perPage), b.renderer, b.cfg.site, b.logger)
	if err != nil {
		return nil, err
	}
	report.Pages = written - 1

	if err := b.writeFeed(listed); err != nil {
		return nil, err
	}

	return report, nil
}

// discover lists the input root in name order and classifies each entry.
// Subdirectories and hidden files are skipped. Static files may not take
// the names of the root index page or the feed.
func (b *Builder) discover(report *Report) ([]*Post, []*StaticAsset, error) {
	entries, err := os.ReadDir(b.inputDir)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrReadSource, err)
	}

	var (
		posts   []*Post
		statics []*StaticAsset
	)
	for _, e := range entries {
		path := filepath.Join(b.inputDir, e.Name())

		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			report.Skipped = append(report.Skipped, path)
			b.logger.Warn("skipped input entry", slog.String("path", path))
			continue
		}

		if filepath.Ext(e.Name()) == SourceExt {
			p, err := ReadPost(b.inputDir, path, b.converter)
			if err != nil {
				return nil, nil, err
			}
			posts = append(posts, p)
			continue
		}

		if e.Name() == OutputIndex || e.Name() == FeedFile {
			return nil, nil, fmt.Errorf("%w: %s would be replaced by the generated %s", ErrOutputExists, path, e.Name())
		}
		a, err := NewStaticAsset(b.inputDir, b.outputDir, path)
		if err != nil {
			return nil, nil, err
		}
		statics = append(statics, a)
	}
	return posts, statics, nil
}

func (b *Builder) writeFeed(posts []*Post) error {
	updated := b.now().UTC()
	if len(posts) > 0 {
		t, err := posts[0].Timestamp()
		if err != nil {
			return err
		}
		updated = t
	}

	data, err := renderTemplate(b.renderer, TemplateFeed, FeedData{
		Site:    b.cfg.site,
		Posts:   posts,
		Updated: updated,
	})
	if err != nil {
		return err
	}

	path := filepath.Join(b.outputDir, FeedFile)
	if err := os.WriteFile(path, data, fileutil.FilePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	b.logger.Info("created file", slog.String("path", path))
	return nil
}

// SortPosts orders posts newest first. Posts with equal timestamps keep
// their relative order. Every post must have a valid timestamp.
func SortPosts(posts []*Post) error {
	stamps := make(map[*Post]time.Time, len(posts))
	for _, p := range posts {
		t, err := p.Timestamp()
		if err != nil {
			return err
		}
		stamps[p] = t
	}

	slices.SortStableFunc(posts, func(a, b *Post) int {
		return stamps[b].Compare(stamps[a])
	})
	return nil
}

// ListedPosts returns the posts not marked exclude_from_list, in order.
func ListedPosts(posts []*Post) []*Post {
	listed := make([]*Post, 0, len(posts))
	for _, p := range posts {
		if !p.Metadata().Excluded() {
			listed = append(listed, p)
		}
	}
	return listed
}
