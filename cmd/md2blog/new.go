package main

import (
	"context"
	"fmt"
	"strings"

	md2blog "github.com/alnah/go-md2blog"
)

// runNew creates a post source file stamped with the current time.
func runNew(_ context.Context, args []string, env *Environment) error {
	f, rest, done, err := parseNewFlags(args, env.Stderr)
	if err != nil || done {
		return err
	}

	cfg, err := loadConfig(f.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	if f.input != "" {
		cfg.Input.Dir = f.input
	}

	content := strings.Join(rest, " ")
	path, err := md2blog.CreateSource(cfg.Input.Dir, content, env.Now(), env.NewID)
	if err != nil {
		return err
	}

	newLogger(env.Stderr, f.common).Debug("created source", "path", path)
	fmt.Fprintln(env.Stdout, path)
	return nil
}
