package main

import (
	"context"
	"errors"
	"os"

	cookbook "github.com/alnah/go-cookbook"
	"github.com/alnah/go-cookbook/internal/config"
	"github.com/alnah/go-cookbook/internal/hints"
	"github.com/alnah/go-cookbook/internal/logging"
)

// Exit codes for the cookbook CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error, failed strict check
	ExitUsage   = 2 // Invalid flags, config, manifest, or validation
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitBrowser = 4 // Browser/Chrome errors
	ExitPandoc  = 5 // pandoc missing or failing
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, cookbook.ErrBrowserConnect) ||
		errors.Is(err, cookbook.ErrPageCreate) ||
		errors.Is(err, cookbook.ErrPageLoad) ||
		errors.Is(err, cookbook.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Pandoc errors (exit 5)
	if errors.Is(err, cookbook.ErrPandoc) ||
		errors.Is(err, cookbook.ErrPandocNotFound) {
		return ExitPandoc
	}

	// Usage/config/manifest/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, logging.ErrInvalidFormat) ||
		errors.Is(err, cookbook.ErrManifestNotFound) ||
		errors.Is(err, cookbook.ErrManifestParse) ||
		errors.Is(err, cookbook.ErrInvalidRecipeID) ||
		errors.Is(err, cookbook.ErrUnsupportedFormat) ||
		errors.Is(err, cookbook.ErrInvalidPageSize) ||
		errors.Is(err, cookbook.ErrInvalidOrientation) ||
		errors.Is(err, cookbook.ErrInvalidMargin) ||
		errors.Is(err, cookbook.ErrInvalidFooterPosition) ||
		errors.Is(err, cookbook.ErrStyleNotFound) ||
		errors.Is(err, cookbook.ErrTemplateNotFound) ||
		errors.Is(err, cookbook.ErrInvalidAssetPath) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var he *hintedError
	if errors.As(err, &he) {
		return he.hint
	}

	switch {
	case errors.Is(err, cookbook.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, cookbook.ErrPandocNotFound):
		return hints.ForPandocNotFound()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths("cookbook"))
	case errors.Is(err, cookbook.ErrStyleNotFound):
		return hints.ForStyleNotFound(cookbook.BuiltinStyles())
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
