package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	cookbook "github.com/alnah/go-cookbook"
	"github.com/alnah/go-cookbook/internal/config"
	"github.com/alnah/go-cookbook/internal/fileutil"
	"github.com/alnah/go-cookbook/internal/hints"
)

// defaultTimeout is the generation timeout when neither flag nor env sets one.
const defaultTimeout = 60 * time.Second

// runRender builds the cookbook artifact and writes it to the output path.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
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
	if err := mergeRenderFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, s.env)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, flags.common, env.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	structure, err := loadStructure(cfg.Input.Structure)
	if err != nil {
		return err
	}

	assetLoader, err := cookbook.NewAssetLoader(cfg.Assets.BasePath)
	if err != nil {
		return err
	}

	input := cookbook.Input{
		Format:    cookbook.Format(cfg.Output.Format),
		Title:     cfg.Title,
		Structure: structure,
		Loader:    cookbook.NewLoader(cookbook.NewDirStore(cfg.Input.RecipesDir)),
		Style:     cfg.Style,
		Page:      buildPageSettings(cfg),
		Footer:    buildFooter(cfg),
	}

	gen := env.NewGenerator(
		cookbook.WithTimeout(timeout),
		cookbook.WithAssetLoader(assetLoader),
		cookbook.WithLogger(logger),
	)
	defer func() { _ = gen.Close() }()

	start := env.Now()
	logger.Debug("rendering cookbook",
		zap.String("format", cfg.Output.Format),
		zap.String("structure", cfg.Input.Structure),
		zap.String("recipes", cfg.Input.RecipesDir),
	)

	result, err := gen.Generate(ctx, input)
	if err != nil {
		return err
	}

	outPath := cfg.OutputPath()
	if err := fileutil.WriteFileAtomic(outPath, result.Data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, outPath, err)
	}

	logger.Debug("cookbook written",
		zap.String("path", outPath),
		zap.Int("bytes", len(result.Data)),
		zap.Duration("elapsed", env.Now().Sub(start)),
	)

	printRenderResult(env, flags.common, outPath, result.Stats)
	return nil
}

// printRenderResult reports the output path and any placeholders.
func printRenderResult(env *Environment, common commonFlags, outPath string, stats cookbook.RenderStats) {
	if !common.quiet {
		fmt.Fprintf(env.Stdout, "Wrote %s (%d sections, %d recipes, %d placeholders)\n",
			outPath, stats.Sections, stats.Recipes, stats.Placeholders)
	}
	if len(stats.Missing) > 0 {
		fmt.Fprintf(env.Stderr, "warning: %d recipe file(s) not found: %s%s\n",
			len(stats.Missing), strings.Join(stats.Missing, ", "), hints.ForMissingRecipes(len(stats.Missing)))
	}
	if len(stats.Malformed) > 0 {
		fmt.Fprintf(env.Stderr, "warning: %d recipe file(s) could not be parsed: %s\n",
			len(stats.Malformed), strings.Join(stats.Malformed, ", "))
	}
}

// mergeRenderFlags applies CLI flags over cfg (CLI wins). The format is
// normalized so aliases such as "docx" validate.
func mergeRenderFlags(flags *renderFlags, cfg *config.Config) error {
	if flags.format != "" {
		cfg.Output.Format = flags.format
	}
	format, err := cookbook.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	cfg.Output.Format = string(format)

	if flags.output != "" {
		cfg.Output.Path = flags.output
	}
	if flags.title != "" {
		cfg.Title = flags.title
	}

	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin > 0 {
		cfg.Page.Margin = flags.page.margin
	}

	if flags.footer.position != "" {
		cfg.Footer.Position = flags.footer.position
		cfg.Footer.Enabled = true
	}
	if flags.footer.text != "" {
		cfg.Footer.Text = flags.footer.text
		cfg.Footer.Enabled = true
	}
	if flags.footer.pageNumber {
		cfg.Footer.ShowPageNumber = true
		cfg.Footer.Enabled = true
	}
	if flags.footer.disabled {
		cfg.Footer.Enabled = false
	}

	if flags.assets.style != "" {
		cfg.Style = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	return nil
}

// resolveTimeout returns the --timeout value, else COOKBOOK_TIMEOUT, else
// the default.
func resolveTimeout(flagValue string, env *envConfig) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid timeout %q: %v", ErrUsage, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrUsage, flagValue)
		}
		return d, nil
	}
	if env != nil && env.Timeout > 0 {
		return env.Timeout, nil
	}
	return defaultTimeout, nil
}

// buildPageSettings converts page config; zero fields take library defaults.
func buildPageSettings(cfg *config.Config) *cookbook.PageSettings {
	page := cookbook.DefaultPageSettings()
	if cfg.Page.Size != "" {
		page.Size = cfg.Page.Size
	}
	if cfg.Page.Orientation != "" {
		page.Orientation = cfg.Page.Orientation
	}
	if cfg.Page.Margin > 0 {
		page.Margin = cfg.Page.Margin
	}
	return page
}

// buildFooter returns nil when the footer is disabled.
func buildFooter(cfg *config.Config) *cookbook.Footer {
	if !cfg.Footer.Enabled {
		return nil
	}
	return &cookbook.Footer{
		Position:       cfg.Footer.Position,
		ShowPageNumber: cfg.Footer.ShowPageNumber,
		Text:           cfg.Footer.Text,
	}
}
