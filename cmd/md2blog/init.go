package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-md2blog/internal/config"
	"github.com/alnah/go-md2blog/internal/fileutil"
)

// ErrConfigExists indicates init would overwrite a file without --force.
var ErrConfigExists = errors.New("config file already exists")

// runInit writes the default configuration as YAML.
func runInit(_ context.Context, args []string, env *Environment) error {
	f, rest, done, err := parseInitFlags(args, env.Stderr)
	if err != nil || done {
		return err
	}
	if len(rest) > 1 {
		return fmt.Errorf("%w: init takes at most one path, got %q", ErrUsage, rest)
	}

	path := config.DefaultName + ".yaml"
	if len(rest) == 1 {
		path = rest[0]
	}

	if !f.force && fileutil.FileExists(path) {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}

	data, err := config.Marshal(config.DefaultConfig())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, fileutil.FilePermissions); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintln(env.Stdout, path)
	return nil
}
