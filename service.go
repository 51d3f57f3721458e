package cookbook

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Service generates cookbooks. Create with New(), call Generate() per
// artifact, and Close() when done to release the browser.
type Service struct {
	cfg          serviceConfig
	logger       *zap.Logger
	assets       AssetLoader
	runner       CommandRunner
	markdown     *inlineMarkdown
	pdfConverter pdfConverter
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithLogger).
func New(opts ...Option) *Service {
	s := &Service{
		cfg:      serviceConfig{timeout: defaultTimeout},
		logger:   zap.NewNop(),
		assets:   embeddedAssetLoader(),
		runner:   &ExecRunner{},
		markdown: newInlineMarkdown(),
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create PDF converter if not injected (e.g., by tests).
	// The browser itself starts on first use.
	if s.pdfConverter == nil {
		s.pdfConverter = newRodConverter(s.cfg.timeout)
	}

	return s
}

// Generate renders the cookbook described by input. Missing or unparsable
// recipe records become placeholders and are counted in Result.Stats; a
// manifest problem, an invalid input or a sink failure returns an error and
// no data.
func (s *Service) Generate(ctx context.Context, input Input) (*Result, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()

	sink, err := s.newSink(input)
	if err != nil {
		return nil, err
	}

	title := input.Title
	if title == "" {
		title = DefaultTitle
	}

	start := time.Now()
	stats, err := render(ctx, Document{
		Title:     title,
		Structure: input.Structure,
		Loader:    input.Loader,
	}, sink, s.logger)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := sink.Finish(ctx, &buf); err != nil {
		return nil, err
	}

	s.logger.Debug("cookbook generated",
		zap.String("format", string(input.Format)),
		zap.Int("sections", stats.Sections),
		zap.Int("recipes", stats.Recipes),
		zap.Int("placeholders", stats.Placeholders),
		zap.Int("bytes", buf.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Result{Data: buf.Bytes(), Stats: *stats}, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.pdfConverter != nil {
		return s.pdfConverter.Close()
	}
	return nil
}

// newSink builds the sink for the requested format. Assets are loaded here
// so a bad style fails before any record is read.
func (s *Service) newSink(input Input) (Sink, error) {
	switch input.Format {
	case FormatHTML:
		return newHTMLSink(s.assets, input.Style, s.markdown)
	case FormatPDF:
		page := input.Page
		if page == nil {
			page = DefaultPageSettings()
		}
		return newPDFSink(s.assets, input.Style, s.markdown, s.pdfConverter,
			&pdfOptions{Page: page, Footer: input.Footer})
	case FormatDocument:
		return newDocumentSink(s.runner), nil
	case FormatMarkdown:
		return newMarkdownSink(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, input.Format)
	}
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at config load time.
func (s *Service) validateInput(input Input) error {
	if input.Structure == nil {
		return ErrNilStructure
	}
	if input.Loader == nil {
		return ErrNilLoader
	}
	if !input.Format.valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, input.Format)
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	if err := input.Footer.Validate(); err != nil {
		return err
	}
	return nil
}
