package media

// Notes:
// - HTTP downloads are tested against httptest servers; redirect limits are
//   not exercised.
// - Animated GIF passthrough is covered; per-frame resizing is not supported.

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(w, h)); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solid(w, h), nil); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int, string) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	return cfg.Width, cfg.Height, format
}

// ---------------------------------------------------------------------------
// TestFit - Bounding box arithmetic
// ---------------------------------------------------------------------------

func TestFit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		w, h         int
		maxW, maxH   int
		wantW, wantH int
	}{
		{name: "inside box unchanged", w: 800, h: 600, maxW: 1000, maxH: 1000, wantW: 800, wantH: 600},
		{name: "exact box unchanged", w: 1000, h: 1000, maxW: 1000, maxH: 1000, wantW: 1000, wantH: 1000},
		{name: "landscape limited by width", w: 4000, h: 2000, maxW: 1000, maxH: 1000, wantW: 1000, wantH: 500},
		{name: "portrait limited by height", w: 1500, h: 3000, maxW: 1000, maxH: 1000, wantW: 500, wantH: 1000},
		{name: "non-square box", w: 1600, h: 1200, maxW: 800, maxH: 300, wantW: 400, wantH: 300},
		{name: "tiny side stays at least one", w: 10000, h: 2, maxW: 100, maxH: 100, wantW: 100, wantH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotW, gotH := Fit(tt.w, tt.h, tt.maxW, tt.maxH)
			if gotW != tt.wantW || gotH != tt.wantH {
				t.Errorf("Fit(%d, %d, %d, %d) = %dx%d, want %dx%d",
					tt.w, tt.h, tt.maxW, tt.maxH, gotW, gotH, tt.wantW, tt.wantH)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNameExtension
// ---------------------------------------------------------------------------

func TestNameExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want string
	}{
		{"~/Pictures/cat.JPG", "jpg"},
		{"photos/dog.png", "png"},
		{"https://example.com/img/owl.gif?size=large#top", "gif"},
		{"https://example.com/download", ""},
		{`C:\pics\fox.jpeg`, "jpeg"},
		{"archive.tar.gz", "gz"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			if got := NameExtension(tt.src); got != tt.want {
				t.Errorf("NameExtension(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestProcess - Decode, shrink, re-encode
// ---------------------------------------------------------------------------

func TestProcess(t *testing.T) {
	t.Parallel()

	t.Run("small image passes through untouched", func(t *testing.T) {
		t.Parallel()

		data := encodePNG(t, 40, 30)
		p, err := Process(data, "png", 100, 100)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if p.Resized {
			t.Error("Resized = true, want false")
		}
		if !bytes.Equal(p.Data, data) {
			t.Error("Data changed for an image inside the box")
		}
		if p.Width != 40 || p.Height != 30 || p.Ext != "png" {
			t.Errorf("got %dx%d .%s", p.Width, p.Height, p.Ext)
		}
	})

	t.Run("large png shrinks and stays png", func(t *testing.T) {
		t.Parallel()

		p, err := Process(encodePNG(t, 200, 100), "png", 50, 50)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if !p.Resized || p.Width != 50 || p.Height != 25 {
			t.Errorf("got resized=%v %dx%d, want 50x25", p.Resized, p.Width, p.Height)
		}
		w, h, format := decodeSize(t, p.Data)
		if w != 50 || h != 25 || format != "png" {
			t.Errorf("encoded %s %dx%d, want png 50x25", format, w, h)
		}
	})

	t.Run("jpeg keeps the jpeg spelling from the name", func(t *testing.T) {
		t.Parallel()

		p, err := Process(encodeJPEG(t, 300, 300), "jpeg", 100, 100)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if p.Ext != "jpeg" {
			t.Errorf("Ext = %q, want jpeg", p.Ext)
		}
		if _, _, format := decodeSize(t, p.Data); format != "jpeg" {
			t.Errorf("format = %q, want jpeg", format)
		}
	})

	t.Run("misleading name uses decoded format", func(t *testing.T) {
		t.Parallel()

		p, err := Process(encodeJPEG(t, 10, 10), "png", 100, 100)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if p.Ext != "jpg" {
			t.Errorf("Ext = %q, want jpg", p.Ext)
		}
	})

	t.Run("animated gif passes through", func(t *testing.T) {
		t.Parallel()

		pal := color.Palette{color.Black, color.White}
		anim := &gif.GIF{
			Image: []*image.Paletted{
				image.NewPaletted(image.Rect(0, 0, 200, 200), pal),
				image.NewPaletted(image.Rect(0, 0, 200, 200), pal),
			},
			Delay: []int{10, 10},
		}
		var buf bytes.Buffer
		if err := gif.EncodeAll(&buf, anim); err != nil {
			t.Fatalf("gif.EncodeAll: %v", err)
		}

		p, err := Process(buf.Bytes(), "gif", 50, 50)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if p.Resized || !bytes.Equal(p.Data, buf.Bytes()) {
			t.Error("animated gif should be written unchanged")
		}
	})

	t.Run("not an image", func(t *testing.T) {
		t.Parallel()

		_, err := Process([]byte("plain text"), "png", 50, 50)
		if !errors.Is(err, ErrProcess) {
			t.Errorf("Process() error = %v, want ErrProcess", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestFetcher - Local files and HTTP
// ---------------------------------------------------------------------------

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	payload := encodePNG(t, 5, 5)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(payload)
	}))
	t.Cleanup(srv.Close)

	local := filepath.Join(t.TempDir(), "local.png")
	if err := os.WriteFile(local, payload, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	f := NewFetcher(5 * time.Second)

	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{name: "local file", src: local},
		{name: "http url", src: srv.URL + "/pic.png"},
		{name: "http 404", src: srv.URL + "/missing.png", wantErr: ErrFetch},
		{name: "missing local file", src: local + ".absent", wantErr: os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := f.Fetch(context.Background(), tt.src)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Fetch(%q) error = %v, want %v", tt.src, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch(%q) error = %v", tt.src, err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("Fetch(%q) returned %d bytes, want %d", tt.src, len(got), len(payload))
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestImporter_Import - End to end
// ---------------------------------------------------------------------------

func TestImporter_Import(t *testing.T) {
	t.Parallel()

	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "Holiday.PNG")
	if err := os.WriteFile(src, encodePNG(t, 400, 200), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	inputDir := t.TempDir()
	im := NewImporter(inputDir, 100, 100, WithIDFunc(func() string { return "abc123" }))

	res, err := im.Import(context.Background(), src)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if res.File != "abc123.png" {
		t.Errorf("File = %q, want abc123.png", res.File)
	}
	if res.Markdown() != "![abc123](/abc123.png)" {
		t.Errorf("Markdown() = %q", res.Markdown())
	}
	if !res.Resized || res.Width != 100 || res.Height != 50 {
		t.Errorf("got resized=%v %dx%d, want 100x50", res.Resized, res.Width, res.Height)
	}

	data, err := os.ReadFile(filepath.Join(inputDir, "abc123.png"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if w, h, _ := decodeSize(t, data); w != 100 || h != 50 {
		t.Errorf("written image %dx%d, want 100x50", w, h)
	}

	// Second import with the same id cannot overwrite the first.
	_, err = im.Import(context.Background(), src)
	if !errors.Is(err, ErrWrite) {
		t.Errorf("second Import() error = %v, want ErrWrite", err)
	}
	if !strings.Contains(res.Path, inputDir) {
		t.Errorf("Path = %q, want inside %q", res.Path, inputDir)
	}
}
