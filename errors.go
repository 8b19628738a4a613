package md2blog

import "errors"

// Sentinel errors for library operations.
var (
	// Source content errors.
	ErrFormat          = errors.New("invalid source format")
	ErrMissingMetadata = errors.New("missing required metadata")
	ErrTimestamp       = errors.New("invalid timestamp")

	// Filesystem errors.
	ErrOutputExists = errors.New("output already exists")
	ErrUnsafeOutput = errors.New("output directory contains the input directory")
	ErrReadSource   = errors.New("reading source failed")
	ErrWriteOutput  = errors.New("writing output failed")
	ErrCopyAsset    = errors.New("copying asset failed")

	// External tool errors.
	ErrMarkdown = errors.New("markdown conversion failed")
	ErrTemplate = errors.New("template rendering failed")
)
