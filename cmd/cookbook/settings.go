package main

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	cookbook "github.com/alnah/go-cookbook"
	"github.com/alnah/go-cookbook/internal/config"
	"github.com/alnah/go-cookbook/internal/hints"
	"github.com/alnah/go-cookbook/internal/logging"
)

// settings is the resolved configuration of one command run.
type settings struct {
	cfg *config.Config
	env *envConfig
}

// loadSettings resolves defaults, the config file and COOKBOOK_* variables,
// then the input flags. Command-specific flags are merged by the caller.
func loadSettings(common commonFlags, input inputFlags, env *Environment) (*settings, error) {
	warnUnknownEnvVars(env.Stderr)
	ev := loadEnvConfig()

	cfg := config.DefaultConfig()
	path := common.config
	if path == "" {
		path = ev.ConfigPath
	}
	if path != "" {
		var err error
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(ev, cfg)

	if input.structure != "" {
		cfg.Input.Structure = input.structure
	}
	if input.recipesDir != "" {
		cfg.Input.RecipesDir = input.recipesDir
	}

	return &settings{cfg: cfg, env: ev}, nil
}

// newLogger builds the diagnostic logger. -v forces debug, -q keeps errors only.
func newLogger(cfg *config.Config, common commonFlags, w io.Writer) (*zap.Logger, error) {
	level := cfg.Log.Level
	switch {
	case common.verbose:
		level = "debug"
	case common.quiet:
		level = "error"
	}
	return logging.New(logging.Config{Level: level, Format: cfg.Log.Format}, w)
}

// loadStructure reads the manifest, attaching a hint when it is absent.
func loadStructure(path string) (*cookbook.Structure, error) {
	structure, err := cookbook.LoadStructure(path)
	if err != nil {
		if errors.Is(err, cookbook.ErrManifestNotFound) {
			return nil, &hintedError{err: err, hint: hints.ForManifestNotFound(path)}
		}
		return nil, err
	}
	return structure, nil
}
