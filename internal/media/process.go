package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"net/url"
	"path"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // decoder registration
)

// JPEGQuality is used when a JPEG has to be re-encoded.
const JPEGQuality = 90

// ErrProcess indicates an image could not be decoded or encoded.
var ErrProcess = errors.New("image processing failed")

// formatExts maps decoder format names to accepted file extensions.
// The first entry is canonical.
var formatExts = map[string][]string{
	"jpeg": {"jpg", "jpeg"},
	"png":  {"png"},
	"gif":  {"gif"},
	"bmp":  {"bmp"},
	"tiff": {"tiff", "tif"},
	"webp": {"webp"},
}

// Processed is an image ready to be written.
type Processed struct {
	Data    []byte
	Ext     string // Without the dot
	Width   int
	Height  int
	Resized bool
}

// Fit returns the largest size with the aspect ratio of w x h that fits in
// maxW x maxH. Sizes already inside the box are returned unchanged.
func Fit(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))
	return min(nw, maxW), min(nh, maxH)
}

// Process decodes data, shrinks it to fit maxW x maxH, and re-encodes it.
// nameExt is the extension taken from the source name and is kept when it
// agrees with the decoded format. Images that already fit, and animated
// GIFs, are returned unchanged.
func Process(data []byte, nameExt string, maxW, maxH int) (*Processed, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcess, err)
	}

	ext := extensionFor(format, nameExt)
	w, h := Fit(cfg.Width, cfg.Height, maxW, maxH)
	if (w == cfg.Width && h == cfg.Height) || isAnimatedGIF(format, data) {
		return &Processed{Data: data, Ext: ext, Width: cfg.Width, Height: cfg.Height}, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcess, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	// webp has no encoder; resized webp images become PNG.
	if format == "webp" {
		format, ext = "png", "png"
	}

	var buf bytes.Buffer
	if err := encode(&buf, dst, format); err != nil {
		return nil, fmt.Errorf("%w: encoding %s: %v", ErrProcess, format, err)
	}

	return &Processed{Data: buf.Bytes(), Ext: ext, Width: w, Height: h, Resized: true}, nil
}

func encode(buf *bytes.Buffer, img image.Image, format string) error {
	switch format {
	case "jpeg":
		return jpeg.Encode(buf, img, &jpeg.Options{Quality: JPEGQuality})
	case "png":
		return png.Encode(buf, img)
	case "gif":
		return gif.Encode(buf, img, nil)
	case "bmp":
		return bmp.Encode(buf, img)
	case "tiff":
		return tiff.Encode(buf, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("no encoder for %s", format)
	}
}

func isAnimatedGIF(format string, data []byte) bool {
	if format != "gif" {
		return false
	}
	g, err := gif.DecodeAll(bytes.NewReader(data))
	return err == nil && len(g.Image) > 1
}

func extensionFor(format, nameExt string) string {
	exts, ok := formatExts[format]
	if !ok {
		return format
	}
	nameExt = strings.ToLower(nameExt)
	for _, e := range exts {
		if e == nameExt {
			return e
		}
	}
	return exts[0]
}

// NameExtension returns the lower-case extension of the last path element
// of src, without the dot. URL queries and fragments are ignored.
func NameExtension(src string) string {
	p := src
	if u, err := url.Parse(src); err == nil && u.Scheme != "" && u.Host != "" {
		p = u.Path
	}
	ext := path.Ext(strings.ReplaceAll(p, "\\", "/"))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
