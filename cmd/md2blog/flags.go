package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage indicates invalid flags or arguments.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags override the site config for build and watch.
type siteFlags struct {
	input      string
	output     string
	templates  string
	style      string
	perPage    int
	siteURL    string
	unsafeHTML bool
}

// buildFlags holds all flags for the build and watch commands.
type buildFlags struct {
	common commonFlags
	site   siteFlags
}

// newFlags holds flags for the new command.
type newFlags struct {
	common commonFlags
	input  string
}

// importFlags holds flags for the import command.
type importFlags struct {
	common    commonFlags
	input     string
	maxWidth  int
	maxHeight int
	timeout   string
}

// initFlags holds flags for the init command.
type initFlags struct {
	force bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every file")
}

// addSiteFlags adds site override flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVarP(&f.input, "input", "i", "", "source directory")
	fs.StringVarP(&f.output, "output", "o", "", "output directory (emptied on build)")
	fs.StringVarP(&f.templates, "templates", "t", "", "theme directory (\"\" = embedded theme)")
	fs.StringVar(&f.style, "style", "", "stylesheet name under styles/")
	fs.IntVar(&f.perPage, "per-page", 0, "posts per index page")
	fs.StringVar(&f.siteURL, "site-url", "", "absolute base URL for feed links")
	fs.BoolVar(&f.unsafeHTML, "unsafe-html", false, "pass raw HTML in posts through")
}

// parseFlagSet parses args with fs. It reports done when help was shown.
func parseFlagSet(fs *flag.FlagSet, args []string, stderr io.Writer, usage func(io.Writer)) (rest []string, done bool, err error) {
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return fs.Args(), false, nil
}

// parseBuildFlags parses build or watch flags and returns positional args.
func parseBuildFlags(name string, args []string, stderr io.Writer) (*buildFlags, []string, bool, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	f := &buildFlags{}
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)

	usage := printBuildUsage
	if name == "watch" {
		usage = printWatchUsage
	}
	rest, done, err := parseFlagSet(fs, args, stderr, usage)
	return f, rest, done, err
}

// parseNewFlags parses new command flags and returns positional args.
func parseNewFlags(args []string, stderr io.Writer) (*newFlags, []string, bool, error) {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	f := &newFlags{}
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.input, "input", "i", "", "source directory")

	rest, done, err := parseFlagSet(fs, args, stderr, printNewUsage)
	return f, rest, done, err
}

// parseImportFlags parses import command flags and returns positional args.
func parseImportFlags(args []string, stderr io.Writer) (*importFlags, []string, bool, error) {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	f := &importFlags{}
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.input, "input", "i", "", "source directory")
	fs.IntVar(&f.maxWidth, "max-width", 0, "maximum image width in pixels")
	fs.IntVar(&f.maxHeight, "max-height", 0, "maximum image height in pixels")
	fs.StringVar(&f.timeout, "timeout", "", "download timeout (e.g., 30s, 2m)")

	rest, done, err := parseFlagSet(fs, args, stderr, printImportUsage)
	return f, rest, done, err
}

// parseInitFlags parses init command flags and returns positional args.
func parseInitFlags(args []string, stderr io.Writer) (*initFlags, []string, bool, error) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	f := &initFlags{}
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing file")

	rest, done, err := parseFlagSet(fs, args, stderr, printInitUsage)
	return f, rest, done, err
}
