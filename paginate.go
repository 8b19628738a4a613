package md2blog

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/alnah/go-md2blog/internal/fileutil"
)

// DefaultPerPage is the number of posts on each index page.
const DefaultPerPage = 5

// Page is one index page of the post listing.
type Page struct {
	Number      int // 1-based
	Posts       []*Post
	PreviousURL string // "" on the first page
	NextURL     string // "" on the last page
}

// PageURL returns the address of index page n. Page 1 lives at the site root.
func PageURL(n int) string {
	if n <= 1 {
		return "/"
	}
	return "/" + strconv.Itoa(n) + "/"
}

// Paginate splits posts into consecutive pages of at most perPage posts,
// keeping their order. No posts still yield one empty page.
// Panics if perPage < 1.
func Paginate(posts []*Post, perPage int) []Page {
	if perPage < 1 {
		panic("md2blog: Paginate perPage must be positive")
	}

	total := max(1, (len(posts)+perPage-1)/perPage)
	pages := make([]Page, 0, total)
	for i := range total {
		n := i + 1
		start := i * perPage
		end := min(start+perPage, len(posts))

		page := Page{Number: n, Posts: posts[start:end:end]}
		if n > 1 {
			page.PreviousURL = PageURL(n - 1)
		}
		if n < total {
			page.NextURL = PageURL(n + 1)
		}
		pages = append(pages, page)
	}
	return pages
}

// WritePages renders every page into outputRoot/<n>/index.html, then copies
// page 1 to outputRoot/index.html. It returns the number of files written.
func WritePages(outputRoot string, pages []Page, r Renderer, site Site, logger *slog.Logger) (int, error) {
	if len(pages) == 0 {
		return 0, nil
	}

	written := 0
	for _, page := range pages {
		data, err := renderTemplate(r, TemplateList, ListPage{
			Site:        site,
			Posts:       page.Posts,
			PageNumber:  page.Number,
			PreviousURL: page.PreviousURL,
			NextURL:     page.NextURL,
		})
		if err != nil {
			return written, fmt.Errorf("page %d: %w", page.Number, err)
		}

		path, err := writeIndex(filepath.Join(outputRoot, strconv.Itoa(page.Number)), data)
		if err != nil {
			return written, fmt.Errorf("page %d: %w", page.Number, err)
		}
		written++
		logger.Info("created file", slog.String("path", path))
	}

	first := filepath.Join(outputRoot, "1", OutputIndex)
	root := filepath.Join(outputRoot, OutputIndex)
	if err := fileutil.CopyFile(first, root); err != nil {
		return written, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	written++
	logger.Info("copied file", slog.String("from", first), slog.String("to", root))
	return written, nil
}
