package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Generate the site from the source directory")
	fmt.Fprintln(w, "  watch      Rebuild the site whenever sources change")
	fmt.Fprintln(w, "  new        Create a new post source file")
	fmt.Fprintln(w, "  import     Resize images into the source directory")
	fmt.Fprintln(w, "  init       Write a default config file")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2blog help <command>' for details on a specific command.")
}

// printSiteFlags prints flags shared by build and watch.
func printSiteFlags(w io.Writer) {
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "  -i, --input <dir>         Source directory")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (its contents are removed)")
	fmt.Fprintln(w, "  -t, --templates <dir>     Theme directory (\"\" = embedded theme)")
	fmt.Fprintln(w, "      --style <name>        Stylesheet name under styles/")
	fmt.Fprintln(w, "      --per-page <n>        Posts per index page")
	fmt.Fprintln(w, "      --site-url <url>      Absolute base URL for feed links")
	fmt.Fprintln(w, "      --unsafe-html         Pass raw HTML in posts through")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printCommonFlags prints flags accepted by every command with a config.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log every file")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every post, copy static files, and write index pages and the feed.")
	fmt.Fprintln(w)
	printSiteFlags(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog watch [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build once, then rebuild whenever the source or theme directory changes.")
	fmt.Fprintln(w, "Stop with Ctrl+C.")
	fmt.Fprintln(w)
	printSiteFlags(w)
}

// printNewUsage prints usage for the new command.
func printNewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog new [flags] [content...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create <input>/<id>.md with the current timestamp and print its path.")
	fmt.Fprintln(w, "Arguments are joined with spaces to form the body (default \"# Hello, world\").")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -i, --input <dir>         Source directory")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printImportUsage prints usage for the import command.
func printImportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog import [flags] <image>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Copy images (files or http(s) URLs) into the source directory, shrinking")
	fmt.Fprintln(w, "them to fit the maximum size, and print a Markdown tag for each.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -i, --input <dir>         Source directory")
	fmt.Fprintln(w, "      --max-width <n>       Maximum width in pixels")
	fmt.Fprintln(w, "      --max-height <n>      Maximum height in pixels")
	fmt.Fprintln(w, "      --timeout <d>         Download timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog init [flags] [path]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the default configuration to path (default md2blog.yaml).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -f, --force               Overwrite an existing file")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "new":
		printNewUsage(env.Stdout)
	case "import":
		printImportUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2blog version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2blog help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
