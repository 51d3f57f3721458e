package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	cookbook "github.com/alnah/go-cookbook"
	"github.com/alnah/go-cookbook/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // COOKBOOK_CONFIG: config file name or path
	Format     string        // COOKBOOK_FORMAT: output format
	Structure  string        // COOKBOOK_STRUCTURE: manifest path
	RecipesDir string        // COOKBOOK_RECIPES_DIR: recipe records folder
	Output     string        // COOKBOOK_OUTPUT: output file
	Title      string        // COOKBOOK_TITLE: cookbook title
	Style      string        // COOKBOOK_STYLE: CSS style name or path
	Timeout    time.Duration // COOKBOOK_TIMEOUT: generation timeout
	PageSize   string        // COOKBOOK_PAGE_SIZE: a4, letter, legal
	LogLevel   string        // COOKBOOK_LOG_LEVEL: debug, info, warn, error
}

// knownEnvVars lists valid COOKBOOK_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"COOKBOOK_CONFIG":      true,
	"COOKBOOK_FORMAT":      true,
	"COOKBOOK_STRUCTURE":   true,
	"COOKBOOK_RECIPES_DIR": true,
	"COOKBOOK_OUTPUT":      true,
	"COOKBOOK_TITLE":       true,
	"COOKBOOK_STYLE":       true,
	"COOKBOOK_TIMEOUT":     true,
	"COOKBOOK_PAGE_SIZE":   true,
	"COOKBOOK_LOG_LEVEL":   true,
	cookbook.PandocBinEnv:  true,
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable or non-positive COOKBOOK_TIMEOUT is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("COOKBOOK_CONFIG"),
		Format:     os.Getenv("COOKBOOK_FORMAT"),
		Structure:  os.Getenv("COOKBOOK_STRUCTURE"),
		RecipesDir: os.Getenv("COOKBOOK_RECIPES_DIR"),
		Output:     os.Getenv("COOKBOOK_OUTPUT"),
		Title:      os.Getenv("COOKBOOK_TITLE"),
		Style:      os.Getenv("COOKBOOK_STYLE"),
		PageSize:   os.Getenv("COOKBOOK_PAGE_SIZE"),
		LogLevel:   os.Getenv("COOKBOOK_LOG_LEVEL"),
	}

	if timeout := os.Getenv("COOKBOOK_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized COOKBOOK_*
// variable, in name order. Helps catch typos like COOKBOOK_RECIPE_DIR.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, "COOKBOOK_") {
			continue
		}
		name := strings.SplitN(env, "=", 2)[0]
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overrides cfg with every environment value that is set.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Format != "" {
		cfg.Output.Format = env.Format
	}
	if env.Structure != "" {
		cfg.Input.Structure = env.Structure
	}
	if env.RecipesDir != "" {
		cfg.Input.RecipesDir = env.RecipesDir
	}
	if env.Output != "" {
		cfg.Output.Path = env.Output
	}
	if env.Title != "" {
		cfg.Title = env.Title
	}
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
}
