package cookbook

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Format selects the output artifact.
type Format string

// Supported output formats.
const (
	FormatPDF      Format = "pdf"
	FormatDocument Format = "document"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// Formats lists every supported format.
var Formats = []Format{FormatPDF, FormatDocument, FormatHTML, FormatMarkdown}

// ParseFormat converts a case-insensitive name to a Format.
// "docx" and "word" are accepted for FormatDocument, "md" for FormatMarkdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "document", "docx", "word":
		return FormatDocument, nil
	case "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Extension returns the file extension (with dot) for the format.
func (f Format) Extension() string {
	switch f {
	case FormatPDF:
		return ".pdf"
	case FormatDocument:
		return ".docx"
	case FormatHTML:
		return ".html"
	case FormatMarkdown:
		return ".md"
	default:
		return ""
	}
}

func (f Format) valid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// DefaultTitle is used when Input.Title is empty.
const DefaultTitle = "My Cookbook"

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid. A nil p and empty or zero
// fields stand for the defaults. Comparison is case-insensitive.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if p.Size != "" && !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if p.Orientation != "" && !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin != 0 && (p.Margin < MinMargin || p.Margin > MaxMargin) {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// withDefaults returns a copy of p with empty fields set to the defaults.
func (p *PageSettings) withDefaults() *PageSettings {
	out := DefaultPageSettings()
	if p == nil {
		return out
	}
	if p.Size != "" {
		out.Size = p.Size
	}
	if p.Orientation != "" {
		out.Orientation = p.Orientation
	}
	if p.Margin != 0 {
		out.Margin = p.Margin
	}
	return out
}

// Dimensions returns paper width and height in inches, swapped for
// landscape. Unknown sizes fall back to letter.
func (p *PageSettings) Dimensions() (width, height float64) {
	if p == nil {
		p = DefaultPageSettings()
	}
	switch strings.ToLower(p.Size) {
	case PageSizeA4:
		width, height = 8.27, 11.69
	case PageSizeLegal:
		width, height = 8.5, 14
	default:
		width, height = 8.5, 11
	}
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		width, height = height, width
	}
	return width, height
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Footer configures the PDF footer.
type Footer struct {
	Position       string // "left", "center", "right" (default: "right")
	ShowPageNumber bool
	Text           string
}

// Validate checks that footer settings are valid.
// Returns nil if f is nil (nil means no footer).
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", "left", "center", "right":
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}

// Input contains generation parameters.
type Input struct {
	Format    Format        // Output format (required)
	Title     string        // Cookbook title (default: DefaultTitle)
	Structure *Structure    // Section order (required)
	Loader    RecordLoader  // Recipe source (required)
	Style     string        // Style name or CSS file path (default depends on format)
	Page      *PageSettings // PDF page settings (optional, nil = defaults)
	Footer    *Footer       // PDF footer (optional, nil = no footer)
}

// Result is the generated artifact.
type Result struct {
	Data  []byte
	Stats RenderStats
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 60 * time.Second

// WithTimeout sets the generation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("cookbook: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithAssetLoader sets where styles and page templates come from.
// Panics if loader is nil.
func WithAssetLoader(loader AssetLoader) Option {
	if loader == nil {
		panic("cookbook: WithAssetLoader loader must not be nil")
	}
	return func(s *Service) {
		s.assets = loader
	}
}

// WithLogger sets the logger used for progress and placeholder warnings.
// A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger == nil {
			logger = zap.NewNop()
		}
		s.logger = logger
	}
}

// WithCommandRunner sets the runner used to invoke pandoc.
// Panics if runner is nil.
func WithCommandRunner(runner CommandRunner) Option {
	if runner == nil {
		panic("cookbook: WithCommandRunner runner must not be nil")
	}
	return func(s *Service) {
		s.runner = runner
	}
}
