package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cookbook <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Build the cookbook (pdf, document, html, markdown)")
	fmt.Fprintln(w, "  check      Compare the structure manifest with the recipe files")
	fmt.Fprintln(w, "  scaffold   Create template recipe files")
	fmt.Fprintln(w, "  doctor     Check Chrome and pandoc availability")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'cookbook help <command>' for details on a specific command.")
}

// printInputUsage prints the flags shared by render, check and scaffold.
func printInputUsage(w io.Writer) {
	fmt.Fprintln(w, "Input:")
	fmt.Fprintln(w, "  -s, --structure <path>    Structure manifest (default: cookbook_structure.yaml)")
	fmt.Fprintln(w, "  -r, --recipes <dir>       Recipe records folder (default: recipes)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// printOutputControlUsage prints the verbosity flags.
func printOutputControlUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed progress")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cookbook render [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every section and recipe of the manifest, in manifest order.")
	fmt.Fprintln(w, "Missing or unreadable recipe files become placeholders.")
	fmt.Fprintln(w)
	printInputUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -f, --format <s>          pdf, document (docx), html, markdown (md)")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default depends on format)")
	fmt.Fprintln(w, "      --title <s>           Cookbook title (default: My Cookbook)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page (pdf):")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Footer (pdf):")
	fmt.Fprintln(w, "      --footer-position <s> Position: left, center, right")
	fmt.Fprintln(w, "      --footer-text <s>     Custom footer text")
	fmt.Fprintln(w, "      --footer-page-number  Show page numbers")
	fmt.Fprintln(w, "      --no-footer           Disable footer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling (pdf, html):")
	fmt.Fprintln(w, "      --style <s>           CSS style name or file path")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/ and templates/ overrides")
	fmt.Fprintln(w)
	printOutputControlUsage(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cookbook check [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report missing, template, malformed, orphaned and duplicated recipes.")
	fmt.Fprintln(w)
	printInputUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report:")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w, "      --strict              Exit 1 unless every declared recipe is filled")
	fmt.Fprintln(w)
	printOutputControlUsage(w)
}

// printScaffoldUsage prints usage for the scaffold command.
func printScaffoldUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cookbook scaffold [id...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write template records (title plus empty fields) into the recipes folder.")
	fmt.Fprintln(w)
	printInputUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Scaffold:")
	fmt.Fprintln(w, "      --missing             Every declared recipe without a file")
	fmt.Fprintln(w, "      --force               Overwrite existing records")
	fmt.Fprintln(w)
	printOutputControlUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cookbook doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that Chrome (pdf) and pandoc (document) can be found.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "scaffold":
		printScaffoldUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: cookbook version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: cookbook help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
