package main

import (
	"context"
	"io"
	"os"
	"time"

	cookbook "github.com/alnah/go-cookbook"
)

// Generator is the part of the cookbook service used by the CLI.
type Generator interface {
	Generate(ctx context.Context, input cookbook.Input) (*cookbook.Result, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Generator = (*cookbook.Service)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	NewGenerator func(opts ...cookbook.Option) Generator
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewGenerator: func(opts ...cookbook.Option) Generator {
			return cookbook.New(opts...)
		},
	}
}
