package md2blog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2blog/internal/fileutil"
)

// StaticAsset is a non-Markdown input file copied verbatim.
type StaticAsset struct {
	sourcePath string
	outputPath string
}

// NewStaticAsset maps sourcePath under inputRoot to the same relative path
// under outputRoot.
func NewStaticAsset(inputRoot, outputRoot, sourcePath string) (*StaticAsset, error) {
	rel, err := filepath.Rel(inputRoot, sourcePath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: %s is not inside %s", ErrCopyAsset, sourcePath, inputRoot)
	}
	return &StaticAsset{
		sourcePath: sourcePath,
		outputPath: filepath.Join(outputRoot, rel),
	}, nil
}

// SourcePath returns the input file.
func (a *StaticAsset) SourcePath() string { return a.sourcePath }

// OutputPath returns the destination file.
func (a *StaticAsset) OutputPath() string { return a.outputPath }

// Copy copies the file byte for byte. Directories on the way to the
// destination are not created.
func (a *StaticAsset) Copy() error {
	if err := fileutil.CopyFile(a.sourcePath, a.outputPath); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCopyAsset, a.sourcePath, err)
	}
	return nil
}
