package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// inputFlags locate the manifest and the recipe folder.
type inputFlags struct {
	structure  string
	recipesDir string
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// footerFlags holds footer-related flags.
type footerFlags struct {
	position   string
	text       string
	pageNumber bool
	disabled   bool
}

// assetFlags holds asset-related flags.
type assetFlags struct {
	style     string // Name or path for CSS
	assetPath string // Override asset directory
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common  commonFlags
	input   inputFlags
	format  string
	output  string
	title   string
	timeout string
	page    pageFlags
	footer  footerFlags
	assets  assetFlags
}

// checkFlags holds flags for the check command.
type checkFlags struct {
	common commonFlags
	input  inputFlags
	json   bool
	strict bool
}

// scaffoldFlags holds flags for the scaffold command.
type scaffoldFlags struct {
	common  commonFlags
	input   inputFlags
	missing bool
	force   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// addInputFlags adds manifest and recipe folder flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringVarP(&f.structure, "structure", "s", "", "structure manifest path")
	fs.StringVarP(&f.recipesDir, "recipes", "r", "", "recipe records directory")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addFooterFlags adds footer flags to a FlagSet.
func addFooterFlags(fs *flag.FlagSet, f *footerFlags) {
	fs.StringVar(&f.position, "footer-position", "", "footer position: left, center, right")
	fs.StringVar(&f.text, "footer-text", "", "custom footer text")
	fs.BoolVar(&f.pageNumber, "footer-page-number", false, "show page numbers in footer")
	fs.BoolVar(&f.disabled, "no-footer", false, "disable footer")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// newFlagSet returns a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, usage func(io.Writer), w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	fs := newFlagSet("render", printRenderUsage, w)
	f := &renderFlags{}

	fs.StringVarP(&f.format, "format", "f", "", "output format: pdf, document, html, markdown")
	fs.StringVarP(&f.output, "output", "o", "", "output file")
	fs.StringVar(&f.title, "title", "", "cookbook title")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "generation timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addPageFlags(fs, &f.page)
	addFooterFlags(fs, &f.footer)
	addAssetFlags(fs, &f.assets)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCheckFlags parses check command flags.
func parseCheckFlags(args []string, w io.Writer) (*checkFlags, []string, error) {
	fs := newFlagSet("check", printCheckUsage, w)
	f := &checkFlags{}

	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	fs.BoolVar(&f.strict, "strict", false, "exit non-zero when the cookbook is incomplete")

	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseScaffoldFlags parses scaffold command flags and returns the ids.
func parseScaffoldFlags(args []string, w io.Writer) (*scaffoldFlags, []string, error) {
	fs := newFlagSet("scaffold", printScaffoldUsage, w)
	f := &scaffoldFlags{}

	fs.BoolVar(&f.missing, "missing", false, "scaffold every declared recipe without a file")
	fs.BoolVar(&f.force, "force", false, "overwrite existing records")

	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, w io.Writer) (jsonOutput bool, err error) {
	fs := newFlagSet("doctor", printDoctorUsage, w)
	fs.BoolVar(&jsonOutput, "json", false, "print the diagnostics as JSON")
	if err := fs.Parse(args); err != nil {
		return false, err
	}
	return jsonOutput, nil
}
