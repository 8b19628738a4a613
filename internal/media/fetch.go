package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/alnah/go-md2blog/internal/fileutil"
)

// MaxImageBytes caps the size of a fetched image.
const MaxImageBytes = 50 << 20

// Sentinel errors for fetching.
var (
	ErrFetch    = errors.New("image fetch failed")
	ErrTooLarge = errors.New("image exceeds size limit")
)

// Fetcher reads image bytes from files or http(s) URLs.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher whose HTTP requests time out after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return errors.New("too many redirects")
			}
			return nil
		},
	}}
}

// Fetch returns the bytes behind src. A src starting with http:// or
// https:// is downloaded; anything else is read from disk after "~"
// expansion.
func (f *Fetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	if fileutil.IsURL(src) {
		return f.download(ctx, src)
	}
	return readLocal(src)
}

func (f *Fetcher) download(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, src, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, src, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: HTTP %d", ErrFetch, src, resp.StatusCode)
	}

	return readLimited(resp.Body, src)
}

func readLocal(src string) ([]byte, error) {
	path, err := fileutil.ExpandHome(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided import path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer func() { _ = f.Close() }()

	return readLimited(f, path)
}

func readLimited(r io.Reader, src string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrFetch, src, err)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("%w: %s (max %d bytes)", ErrTooLarge, src, MaxImageBytes)
	}
	return data, nil
}
