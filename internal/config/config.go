package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-cookbook/internal/fileutil"
	"github.com/alnah/go-cookbook/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxPathLength        = 4096
	MaxStyleLength       = 100
	MaxTextLength        = 500
	MaxPageSizeLength    = 10
	MaxOrientationLength = 10
)

// Output formats understood by the renderer.
const (
	FormatPDF      = "pdf"
	FormatDocument = "document"
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Defaults mirror the file names the cookbook has always used.
const (
	DefaultTitle         = "My Cookbook"
	DefaultStructurePath = "cookbook_structure.yaml"
	DefaultRecipesDir    = "recipes"
	DefaultFormat        = FormatPDF
	DefaultStyle         = "default"
)

// defaultOutputPaths maps each format to its historical output file name.
var defaultOutputPaths = map[string]string{
	FormatPDF:      "cookbook_fancy_layout.pdf",
	FormatDocument: "fancy_cookbook_layout.docx",
	FormatHTML:     "cookbook_printable.html",
	FormatMarkdown: "cookbook.md",
}

// configDirName is the directory searched under the user config dir.
const configDirName = "go-cookbook"

// Config holds all configuration for cookbook generation.
type Config struct {
	Title  string       `yaml:"title"`
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Style  string       `yaml:"style"` // Name of a style in assets/styles or a CSS file path
	Page   PageConfig   `yaml:"page"`
	Footer FooterConfig `yaml:"footer"`
	Assets AssetsConfig `yaml:"assets"`
	Log    LogConfig    `yaml:"log"`
}

// InputConfig locates the manifest and the recipe records.
type InputConfig struct {
	Structure  string `yaml:"structure"`  // Structure manifest path
	RecipesDir string `yaml:"recipesDir"` // Folder holding one <id>.yaml per recipe
}

// OutputConfig selects the artifact to produce.
type OutputConfig struct {
	Format string `yaml:"format"` // "pdf", "document", "html", "markdown"
	Path   string `yaml:"path"`   // Empty = default name for the format
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// FooterConfig defines the PDF page footer.
type FooterConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Position       string `yaml:"position"` // "left", "center", "right" (default: "right")
	ShowPageNumber bool   `yaml:"showPageNumber"`
	Text           string `yaml:"text"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// LogConfig defines diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "console", "json"
}

// Validate checks enums and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("title", c.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("input.structure", c.Input.Structure, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("input.recipesDir", c.Input.RecipesDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.path", c.Output.Path, MaxPathLength); err != nil {
		return err
	}
	if c.Output.Format != "" && !IsValidFormat(c.Output.Format) {
		return fmt.Errorf("%w: output.format %q (must be pdf, document, html, or markdown)", ErrInvalidValue, c.Output.Format)
	}
	if err := validateFieldLength("style", c.Style, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("page.size", c.Page.Size, MaxPageSizeLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.orientation", c.Page.Orientation, MaxOrientationLength); err != nil {
		return err
	}
	if c.Page.Margin < 0 {
		return fmt.Errorf("%w: page.margin must not be negative, got %.2f", ErrInvalidValue, c.Page.Margin)
	}

	if err := validateFieldLength("footer.text", c.Footer.Text, MaxTextLength); err != nil {
		return err
	}
	if c.Footer.Position != "" {
		switch strings.ToLower(c.Footer.Position) {
		case "left", "center", "right":
		default:
			return fmt.Errorf("%w: footer.position %q (must be left, center, or right)", ErrInvalidValue, c.Footer.Position)
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalidValue, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: log.format %q (must be console or json)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

// OutputPath returns the configured output path, or the default file name
// for the configured format when none is set.
func (c *Config) OutputPath() string {
	if c.Output.Path != "" {
		return c.Output.Path
	}
	return DefaultOutputPath(c.Output.Format)
}

// DefaultOutputPath returns the default artifact name for a format.
func DefaultOutputPath(format string) string {
	if p, ok := defaultOutputPaths[strings.ToLower(format)]; ok {
		return p
	}
	return defaultOutputPaths[DefaultFormat]
}

// IsValidFormat reports whether format names a supported output format
// (case-insensitive).
func IsValidFormat(format string) bool {
	_, ok := defaultOutputPaths[strings.ToLower(format)]
	return ok
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Title: DefaultTitle,
		Input: InputConfig{
			Structure:  DefaultStructurePath,
			RecipesDir: DefaultRecipesDir,
		},
		Output: OutputConfig{Format: DefaultFormat},
		Style:  DefaultStyle,
		Footer: FooterConfig{Enabled: false},
		Assets: AssetsConfig{BasePath: ""},
		Log:    LogConfig{Level: "info", Format: "console"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries the current directory first, then ~/.config/go-cookbook/.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
