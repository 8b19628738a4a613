// Package media imports images into a site's source directory.
//
// An import fetches the image from a local path or an http(s) URL, shrinks
// it to fit a bounding box while keeping its aspect ratio, re-encodes it in
// its own format, and writes it under a short random name. Images already
// inside the box are written byte for byte.
package media
