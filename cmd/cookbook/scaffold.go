package main

import (
	"fmt"

	cookbook "github.com/alnah/go-cookbook"
	"github.com/alnah/go-cookbook/internal/fileutil"
)

// runScaffold writes template records for the ids given as arguments, or
// for every missing id with --missing. Existing records are skipped unless
// --force is set.
func runScaffold(args []string, env *Environment) error {
	flags, ids, err := parseScaffoldFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(ids) == 0 && !flags.missing {
		return fmt.Errorf("%w: give recipe ids or --missing", ErrUsage)
	}

	s, err := loadSettings(flags.common, flags.input, env)
	if err != nil {
		return err
	}
	store := cookbook.NewDirStore(s.cfg.Input.RecipesDir)

	for _, id := range ids {
		if err := cookbook.ValidateRecipeID(id); err != nil {
			return err
		}
	}

	invalid := 0
	if flags.missing {
		structure, err := loadStructure(s.cfg.Input.Structure)
		if err != nil {
			return err
		}
		report, err := cookbook.Reconcile(structure, store)
		if err != nil {
			return err
		}
		// The manifest may declare ids no file can have; those are reported
		// and left out instead of aborting halfway through.
		for _, id := range report.Missing {
			if err := cookbook.ValidateRecipeID(id); err != nil {
				invalid++
				fmt.Fprintf(env.Stderr, "warning: skipped %v\n", err)
				continue
			}
			ids = append(ids, id)
		}
	}

	existing, err := store.IDs()
	if err != nil {
		return err
	}
	exists := make(map[string]bool, len(existing))
	for _, id := range existing {
		exists[id] = true
	}

	written, skipped := 0, invalid
	done := make(map[string]bool, len(ids))
	for _, id := range ids {
		if done[id] {
			continue
		}
		done[id] = true

		if exists[id] && !flags.force {
			skipped++
			if !flags.common.quiet {
				fmt.Fprintf(env.Stdout, "Skipped %s (exists, use --force to overwrite)\n", id)
			}
			continue
		}

		path, err := store.Path(id)
		if err != nil {
			return err
		}
		data, err := cookbook.ScaffoldRecipe(id)
		if err != nil {
			return err
		}
		if err := fileutil.WriteFileAtomic(path, data); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
		}
		written++
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", path)
		}
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "%d created, %d skipped\n", written, skipped)
	}
	return nil
}
