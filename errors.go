package cookbook

import "errors"

// Sentinel errors for library operations.
var (
	// Manifest errors are fatal: nothing is rendered.
	ErrManifestNotFound = errors.New("structure manifest not found")
	ErrManifestParse    = errors.New("invalid structure manifest")

	// Record errors are recovered by the renderer with a placeholder.
	ErrRecordNotFound  = errors.New("recipe file not found")
	ErrRecordParse     = errors.New("recipe file could not be parsed")
	ErrInvalidRecipeID = errors.New("invalid recipe id")

	// Input validation errors.
	ErrNilStructure      = errors.New("structure cannot be nil")
	ErrNilLoader         = errors.New("record loader cannot be nil")
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// Rendering errors.
	ErrHTMLRender     = errors.New("HTML rendering failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPandoc         = errors.New("pandoc conversion failed")
	ErrPandocNotFound = errors.New("pandoc executable not found")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Footer validation errors.
	ErrInvalidFooterPosition = errors.New("invalid footer position")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
