package main

import (
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-md2blog/internal/media"
)

// runImport copies images into the source directory and prints a Markdown
// tag for each one. It stops at the first failure.
func runImport(ctx context.Context, args []string, env *Environment) error {
	f, rest, done, err := parseImportFlags(args, env.Stderr)
	if err != nil || done {
		return err
	}
	if len(rest) == 0 {
		return fmt.Errorf("%w: import needs at least one image", ErrUsage)
	}

	cfg, err := loadConfig(f.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	if f.input != "" {
		cfg.Input.Dir = f.input
	}
	if f.maxWidth != 0 {
		cfg.Images.MaxWidth = f.maxWidth
	}
	if f.maxHeight != 0 {
		cfg.Images.MaxHeight = f.maxHeight
	}
	if f.timeout != "" {
		d, err := time.ParseDuration(f.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: --timeout: invalid duration %q", ErrUsage, f.timeout)
		}
		cfg.Images.Timeout = d
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, f.common)
	im := media.NewImporter(cfg.Input.Dir, cfg.Images.MaxWidth, cfg.Images.MaxHeight,
		media.WithFetcher(media.NewFetcher(cfg.Images.Timeout)),
		media.WithIDFunc(env.NewID),
		media.WithLogger(logger),
	)

	for _, src := range rest {
		res, err := im.Import(ctx, src)
		if err != nil {
			return err
		}
		fmt.Fprintln(env.Stdout, res.Markdown())
	}
	return nil
}
