package md2blog

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-md2blog/internal/dateutil"
	"github.com/alnah/go-md2blog/internal/fileutil"
)

// DefaultContent is the body of a new source file when none is given.
const DefaultContent = "# Hello, world"

// NewSourceText returns the text of a fresh source file stamped with now.
func NewSourceText(now time.Time, content string) string {
	if strings.TrimSpace(content) == "" {
		content = DefaultContent
	}
	return fmt.Sprintf("%s: %s\n%s\n\n%s", KeyTimestamp, dateutil.FormatTimestamp(now), Separator, content)
}

// CreateSource writes a new source file named <id>.md into inputDir and
// returns its path. Existing files are never overwritten. A nil newID uses
// six random hex digits.
func CreateSource(inputDir, content string, now time.Time, newID func() string) (string, error) {
	f, _, err := fileutil.CreateUnique(inputDir, strings.TrimPrefix(SourceExt, "."), newID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	path := f.Name()

	if _, err := f.WriteString(NewSourceText(now, content)); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}
	return path, nil
}
