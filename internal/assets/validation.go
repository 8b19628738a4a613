package assets

import (
	"fmt"
	"regexp"
	"strings"
)

// assetNamePattern allows a base name plus at most one extension.
var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+(\.[A-Za-z0-9]+)?$`)

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty, contains path separators
// or traversal sequences, starts with a dot, or has more than one extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if !assetNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// ValidateStyleName checks a style name, which carries no extension.
func ValidateStyleName(name string) error {
	if err := ValidateAssetName(name); err != nil {
		return err
	}
	if strings.Contains(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
