package cookbook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/alnah/go-cookbook/internal/fileutil"
	"github.com/alnah/go-cookbook/internal/process"
)

// PandocBinEnv overrides the pandoc executable.
const PandocBinEnv = "COOKBOOK_PANDOC_BIN"

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. The child runs in its
// own process group, killed as a whole when ctx is done.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- fixed binary, generated args
	process.Isolate(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			process.KillProcessGroup(cmd.Process.Pid)
		}
		return nil
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return stdout.String(), stderr.String(), ctxErr
	}
	return stdout.String(), stderr.String(), err
}

// pandocBinary returns the pandoc executable name or path.
func pandocBinary() string {
	if bin := os.Getenv(PandocBinEnv); bin != "" {
		return bin
	}
	return "pandoc"
}

// pandocConverter turns pandoc Markdown into a DOCX file via the pandoc CLI.
type pandocConverter struct {
	runner CommandRunner
}

// ToDocx converts markdown and returns the DOCX bytes.
// Uses -f markdown-fancy_lists so letter markers (A), B)) stay literal text.
func (c *pandocConverter) ToDocx(ctx context.Context, markdown string) ([]byte, error) {
	inPath, cleanup, err := fileutil.WriteTempFile(markdown, "md")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	outDir, err := os.MkdirTemp("", "cookbook-docx-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(outDir) }()
	outPath := filepath.Join(outDir, "cookbook.docx")

	_, stderr, err := c.runner.Run(ctx, pandocBinary(),
		inPath, "-f", "markdown-fancy_lists", "-t", "docx", "-o", outPath)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrPandocNotFound, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrPandoc, stderr, err)
	}

	data, err := os.ReadFile(outPath) // #nosec G304 -- path created above
	if err != nil {
		return nil, fmt.Errorf("%w: reading output: %v", ErrPandoc, err)
	}
	return data, nil
}

// Compile-time interface check.
var _ CommandRunner = (*ExecRunner)(nil)
