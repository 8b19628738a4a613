package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	md2blog "github.com/alnah/go-md2blog"
	"github.com/alnah/go-md2blog/internal/config"
)

// runBuild generates the site once.
func runBuild(_ context.Context, args []string, env *Environment) error {
	f, rest, done, err := parseBuildFlags("build", args, env.Stderr)
	if err != nil || done {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("%w: build takes no arguments, got %q", ErrUsage, rest)
	}

	cfg, logger, err := prepareSite(f, env)
	if err != nil {
		return err
	}
	_, err = buildSite(cfg, logger, f.common, env)
	return err
}

// prepareSite loads the config, applies flags, and creates the logger.
func prepareSite(f *buildFlags, env *Environment) (*config.Config, *slog.Logger, error) {
	cfg, err := loadConfig(f.common.config, loadEnvConfig())
	if err != nil {
		return nil, nil, err
	}
	if err := mergeSiteFlags(&f.site, cfg); err != nil {
		return nil, nil, err
	}
	return cfg, newLogger(env.Stderr, f.common), nil
}

// buildSite runs one full build and prints a summary unless quiet.
func buildSite(cfg *config.Config, logger *slog.Logger, common commonFlags, env *Environment) (*md2blog.Report, error) {
	b, err := newBuilder(cfg, logger, env)
	if err != nil {
		return nil, err
	}

	start := env.Now()
	report, err := b.Build()
	if err != nil {
		return nil, err
	}

	if !common.quiet {
		fmt.Fprintf(env.Stdout, "built %s: %d posts (%d listed), %d pages, %d assets in %s\n",
			cfg.Output.Dir, report.Posts, report.Listed, report.Pages, report.Assets,
			env.Now().Sub(start).Round(time.Millisecond))
		for _, name := range report.Skipped {
			fmt.Fprintf(env.Stdout, "skipped %s\n", name)
		}
	}
	return report, nil
}
