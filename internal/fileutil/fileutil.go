// Package fileutil provides file and path utility functions for the build.
package fileutil

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors for file utility operations.
var (
	ErrEmptyPath    = errors.New("path cannot be empty")
	ErrRefuseRoot   = errors.New("refusing to clean filesystem root")
	ErrNotDirectory = errors.New("not a directory")
	ErrNoFreeName   = errors.New("no free file name")
)

// MaxNameAttempts bounds retries when a generated name is already taken.
const MaxNameAttempts = 5

// File permission constants.
const (
	DirPermissions  = 0o755
	FilePermissions = 0o644
)

// CopyFile copies src to dst byte for byte, truncating dst if it exists.
// Parent directories of dst are not created.
func CopyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 -- source paths come from the input root listing
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FilePermissions) // #nosec G304 -- output root is user configured
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return out.Close()
}

// CleanDir removes every entry inside dir, creating dir when it is missing.
// The directory itself is kept so that servers pointed at it keep working.
func CleanDir(dir string) error {
	if dir == "" {
		return ErrEmptyPath
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if abs == filepath.VolumeName(abs)+string(filepath.Separator) {
		return fmt.Errorf("%w: %s", ErrRefuseRoot, dir)
	}

	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return os.MkdirAll(dir, DirPermissions)
	case err != nil:
		return err
	case !info.IsDir():
		return fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Within reports whether path is dir itself or lies below it. Both are
// made absolute first, so "." and "./source" compare as expected.
func Within(path, dir string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false, nil
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))), nil
}

// CreateExclusive creates path for writing, failing with os.ErrExist when it
// already exists.
func CreateExclusive(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FilePermissions) // #nosec G304 -- caller-chosen path inside the input root
}

// ShortID returns six random hex digits.
func ShortID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:3])
}

// CreateUnique exclusively creates dir/<id>.<ext>, drawing a fresh id from
// newID when the name is taken. It returns the open file and the id used.
func CreateUnique(dir, ext string, newID func() string) (*os.File, string, error) {
	if newID == nil {
		newID = ShortID
	}
	for range MaxNameAttempts {
		id := newID()
		f, err := CreateExclusive(filepath.Join(dir, id+"."+ext))
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return nil, "", err
		}
		return f, id, nil
	}
	return nil, "", fmt.Errorf("%w: %d attempts in %s", ErrNoFreeName, MaxNameAttempts, dir)
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
//
// Examples:
//   - "site" -> false (name)
//   - "./site.yaml" -> true (relative path)
//   - "/etc/md2blog/site.yaml" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like an http or https URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
