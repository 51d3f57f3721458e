package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	cookbook "github.com/alnah/go-cookbook"
)

// checkOutput is the JSON form of the audit.
type checkOutput struct {
	Structure  string           `json:"structure"`
	RecipesDir string           `json:"recipesDir"`
	Summary    cookbook.Summary `json:"summary"`
	Report     *cookbook.Report `json:"report"`
}

// runCheck reconciles the manifest with the recipe folder and prints the
// audit. With --strict an incomplete cookbook fails with ErrIncomplete.
func runCheck(args []string, env *Environment) error {
	flags, positional, err := parseCheckFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}

	s, err := loadSettings(flags.common, flags.input, env)
	if err != nil {
		return err
	}
	cfg := s.cfg

	structure, err := loadStructure(cfg.Input.Structure)
	if err != nil {
		return err
	}

	report, err := cookbook.Reconcile(structure, cookbook.NewDirStore(cfg.Input.RecipesDir))
	if err != nil {
		return err
	}

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(checkOutput{
			Structure:  cfg.Input.Structure,
			RecipesDir: cfg.Input.RecipesDir,
			Summary:    report.Summary(),
			Report:     report,
		}); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	} else if !flags.common.quiet {
		printReport(env.Stdout, report)
	}

	if flags.strict && !report.Clean() {
		return fmt.Errorf("%w: %d missing, %d templates, %d malformed, %d duplicated",
			ErrIncomplete, len(report.Missing), len(report.Incomplete), len(report.Malformed), len(report.Duplicates))
	}
	return nil
}

// printReport writes the human-readable audit.
func printReport(w io.Writer, r *cookbook.Report) {
	sum := r.Summary()

	fmt.Fprintf(w, "Total recipes in structure: %d\n", sum.Declared)
	fmt.Fprintf(w, "Missing recipes (in structure but no file): %d\n", sum.Missing)
	printIDs(w, r.Missing)
	fmt.Fprintf(w, "Recipes with content: %d\n", sum.Filled)
	fmt.Fprintf(w, "Empty template recipes (in structure): %d\n", sum.Incomplete)
	printIDs(w, r.Incomplete)
	fmt.Fprintf(w, "Unparsable recipe files (in structure): %d\n", sum.Malformed)
	printIDs(w, r.Malformed)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Orphaned recipe files (not in structure): %d\n", sum.Orphaned)
	printIDs(w, r.Orphaned)

	if len(r.Duplicates) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Recipes declared more than once: %d\n", sum.Duplicates)
		for _, d := range r.Duplicates {
			fmt.Fprintf(w, "  -> %s (%s)\n", d.ID, strings.Join(d.Sections, ", "))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- Summary ---")
	fmt.Fprintf(w, "Total in structure: %d\n", sum.Declared)
	fmt.Fprintf(w, "With recipe files: %d\n", sum.WithRecords)
	fmt.Fprintf(w, "  - Filled with content: %d\n", sum.Filled)
	fmt.Fprintf(w, "  - Empty templates: %d\n", sum.Incomplete)
	fmt.Fprintf(w, "  - Unparsable: %d\n", sum.Malformed)
	fmt.Fprintf(w, "Missing recipe files: %d\n", sum.Missing)
	fmt.Fprintf(w, "Orphaned recipe files: %d\n", sum.Orphaned)
}

// printIDs writes a "  -> a, b" line when ids is non-empty.
func printIDs(w io.Writer, ids []string) {
	if len(ids) > 0 {
		fmt.Fprintf(w, "  -> %s\n", strings.Join(ids, ", "))
	}
}
