package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-md2blog/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// envFiles are loaded in order when present. Variables already set in the
// process environment are never overridden.
var envFiles = []string{".env", ".env.local"}

func main() {
	env := DefaultEnv()

	for _, f := range envFiles {
		if !fileutil.FileExists(f) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			fmt.Fprintf(env.Stderr, "warning: loading %s: %v\n", f, err)
		}
	}
	warnUnknownEnvVars(env.Stderr)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, env)
	stop()
	os.Exit(code)
}

// commands maps command names to their handlers.
var commands = map[string]func(ctx context.Context, args []string, env *Environment) error{
	"build":  runBuild,
	"new":    runNew,
	"import": runImport,
	"watch":  runWatch,
	"init":   runInit,
}

// isCommand reports whether name is a known command.
func isCommand(name string) bool {
	switch name {
	case "version", "help":
		return true
	}
	_, ok := commands[name]
	return ok
}

// runMain dispatches args[1] and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	name, rest := args[1], args[2:]
	switch name {
	case "version":
		fmt.Fprintf(env.Stdout, "md2blog %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	}

	if !isCommand(name) {
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", name)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err := commands[name](ctx, rest, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}
