package cookbook

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-cookbook/internal/assets"
	"github.com/alnah/go-cookbook/internal/fileutil"
)

// Asset names for built-in styles and templates.
const (
	// DefaultStyle is the built-in stylesheet of the HTML site.
	DefaultStyle = assets.DefaultStyleName

	// PrintStyle is the built-in stylesheet of the PDF layout.
	PrintStyle = assets.PrintStyleName

	siteTemplate  = assets.SiteTemplateName
	printTemplate = assets.PrintTemplateName
)

// AssetLoader defines the contract for loading CSS styles and HTML page
// templates. Implementations may load from filesystem, embedded assets, etc.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads a page template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - styles/{name}.css for CSS styles
//   - templates/{name}.html for page templates (site, print)
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// embeddedAssetLoader returns an AssetLoader backed by the built-in assets only.
func embeddedAssetLoader() AssetLoader {
	resolver, _ := assets.NewAssetResolver("") // cannot fail without a base path
	return &assetLoaderAdapter{resolver: resolver}
}

// assetLoaderAdapter wraps the internal resolver to return public errors.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.resolver.LoadTemplate(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

// BuiltinStyles returns the sorted names of the embedded stylesheets.
func BuiltinStyles() []string {
	names, err := assets.NewEmbeddedLoader().Names(assets.Style)
	if err != nil {
		return []string{DefaultStyle, PrintStyle}
	}
	return names
}

// resolveStyle returns CSS for style, which is a style name or a path to a
// CSS file. An empty style selects fallback.
func resolveStyle(loader AssetLoader, style, fallback string) (string, error) {
	if style == "" {
		style = fallback
	}
	if fileutil.IsFilePath(style) || strings.HasSuffix(style, ".css") {
		content, err := os.ReadFile(style) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading style file %q: %w", style, err)
		}
		return string(content), nil
	}
	css, err := loader.LoadStyle(style)
	if err != nil {
		return "", fmt.Errorf("loading style %q: %w", style, err)
	}
	return css, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrStyleNotFound, err) // Invalid name means not found
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
