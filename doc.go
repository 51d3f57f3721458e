// Package cookbook renders a recipe collection into a printable cookbook.
//
// A cookbook is described by two inputs: a structure manifest listing
// sections and the ordered recipe identifiers within each, and a folder of
// recipe records (one YAML file per recipe, named after its identifier).
//
// # Quick Start
//
//	structure, err := cookbook.LoadStructure("cookbook_structure.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	svc := cookbook.New(cookbook.WithTimeout(2 * time.Minute))
//	defer svc.Close()
//
//	result, err := svc.Generate(ctx, cookbook.Input{
//	    Format:    cookbook.FormatPDF,
//	    Title:     "My Cookbook",
//	    Structure: structure,
//	    Loader:    cookbook.NewLoader(cookbook.NewDirStore("recipes")),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("cookbook.pdf", result.Data, 0644)
//
// # Generation Pipeline
//
//  1. The structure manifest fixes section and recipe order.
//  2. Each recipe is loaded from the record store and normalized: flat or
//     grouped ingredient and instruction lists become ordered groups, and
//     notes become a list.
//  3. A single traversal driver (Render) walks the structure and calls a
//     format-specific Sink. Missing or unparsable records become visible
//     placeholders; the run continues.
//  4. The sink finalizes the artifact: an HTML page, a PDF printed by
//     headless Chrome (go-rod), a DOCX converted by pandoc, or Markdown.
//
// # Auditing
//
// Reconcile cross-checks the manifest against the record store and reports
// missing, incomplete (unfilled template), malformed, orphaned and
// duplicated recipes without rendering anything.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
//
// Document (DOCX) generation requires the pandoc executable on PATH, or
// COOKBOOK_PANDOC_BIN pointing at it.
package cookbook
