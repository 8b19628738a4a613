package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-md2blog/internal/config"
)

// DefaultDebounce groups bursts of editor writes into one rebuild.
const DefaultDebounce = 300 * time.Millisecond

// runWatch builds once, then rebuilds on every change until ctx is done.
// A failed rebuild is logged and watching continues.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	f, rest, done, err := parseBuildFlags("watch", args, env.Stderr)
	if err != nil || done {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("%w: watch takes no arguments, got %q", ErrUsage, rest)
	}

	cfg, logger, err := prepareSite(f, env)
	if err != nil {
		return err
	}

	rebuild := func() error {
		_, err := buildSite(cfg, logger, f.common, env)
		return err
	}
	if err := rebuild(); err != nil {
		logger.Error("build failed", "error", err)
	}

	w := &siteWatcher{
		dirs:     watchDirs(cfg),
		ignore:   cfg.Output.Dir,
		debounce: DefaultDebounce,
		rebuild:  rebuild,
		logger:   logger,
	}
	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "watching %s (Ctrl+C to stop)\n", strings.Join(w.dirs, ", "))
	}
	return w.run(ctx)
}

// watchDirs lists the input directory and, for a custom theme, every
// directory below the theme root.
func watchDirs(cfg *config.Config) []string {
	dirs := []string{cfg.Input.Dir}
	if cfg.Templates.Dir == "" {
		return dirs
	}
	_ = filepath.WalkDir(cfg.Templates.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs
}

// siteWatcher calls rebuild once per burst of file system events.
type siteWatcher struct {
	dirs     []string
	ignore   string // Events under this path are dropped
	debounce time.Duration
	rebuild  func() error
	logger   *slog.Logger
}

// run watches until ctx is done. Only setup failures are returned.
func (sw *siteWatcher) run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range sw.dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		sw.logger.Debug("watching directory", "dir", dir)
	}

	ignore := ""
	if sw.ignore != "" {
		if abs, err := filepath.Abs(sw.ignore); err == nil {
			ignore = abs
		}
	}

	timer := time.NewTimer(sw.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event, ignore) {
				continue
			}
			sw.logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			timer.Reset(sw.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			sw.logger.Error("watcher error", "error", err)

		case <-timer.C:
			sw.logger.Info("rebuilding")
			if err := sw.rebuild(); err != nil {
				sw.logger.Error("rebuild failed", "error", err)
			}
		}
	}
}

// relevant drops chmod-only events and events inside the ignored tree.
func relevant(event fsnotify.Event, ignore string) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if ignore == "" {
		return true
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return true
	}
	return abs != ignore && !strings.HasPrefix(abs, ignore+string(filepath.Separator))
}
