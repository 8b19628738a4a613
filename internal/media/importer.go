package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alnah/go-md2blog/internal/fileutil"
)

// ErrWrite indicates the imported image could not be written.
var ErrWrite = errors.New("writing imported image failed")

// Result describes one imported image.
type Result struct {
	Source  string
	ID      string
	File    string // File name inside the input directory
	Path    string
	Width   int
	Height  int
	Resized bool
}

// Markdown returns an image tag referencing the imported file from the site root.
func (r Result) Markdown() string {
	return fmt.Sprintf("![%s](/%s)", r.ID, r.File)
}

// Importer fetches, resizes, and stores images.
type Importer struct {
	dir     string
	maxW    int
	maxH    int
	fetcher *Fetcher
	newID   func() string
	logger  *slog.Logger
}

// ImporterOption configures an Importer.
type ImporterOption func(*Importer)

// WithIDFunc sets the generator for file names.
func WithIDFunc(fn func() string) ImporterOption {
	return func(im *Importer) {
		if fn != nil {
			im.newID = fn
		}
	}
}

// WithFetcher replaces the default Fetcher.
func WithFetcher(f *Fetcher) ImporterOption {
	return func(im *Importer) {
		if f != nil {
			im.fetcher = f
		}
	}
}

// WithLogger sets the logger for per-image messages.
func WithLogger(l *slog.Logger) ImporterOption {
	return func(im *Importer) {
		if l != nil {
			im.logger = l
		}
	}
}

// NewImporter creates an Importer writing into dir and shrinking images to
// fit maxW x maxH.
func NewImporter(dir string, maxW, maxH int, opts ...ImporterOption) *Importer {
	im := &Importer{
		dir:     dir,
		maxW:    maxW,
		maxH:    maxH,
		fetcher: NewFetcher(0),
		newID:   fileutil.ShortID,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Import brings one image into the input directory.
func (im *Importer) Import(ctx context.Context, src string) (*Result, error) {
	data, err := im.fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	p, err := Process(data, NameExtension(src), im.maxW, im.maxH)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}

	res, err := im.write(p)
	if err != nil {
		return nil, err
	}
	res.Source = src

	im.logger.Info("imported image",
		slog.String("source", src),
		slog.String("path", res.Path),
		slog.Int("width", res.Width),
		slog.Int("height", res.Height),
		slog.Bool("resized", res.Resized))
	return res, nil
}

func (im *Importer) write(p *Processed) (*Result, error) {
	f, id, err := fileutil.CreateUnique(im.dir, p.Ext, im.newID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	path := f.Name()

	if _, err := f.Write(p.Data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}

	return &Result{
		ID:      id,
		File:    filepath.Base(path),
		Path:    path,
		Width:   p.Width,
		Height:  p.Height,
		Resized: p.Resized,
	}, nil
}
