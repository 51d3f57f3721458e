package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	cookbook "github.com/alnah/go-cookbook"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and fixture cookbook
// ---------------------------------------------------------------------------

// testEnv wires buffers and a real Service (html and markdown need no
// external tools).
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		NewGenerator: func(opts ...cookbook.Option) Generator {
			return cookbook.New(opts...)
		},
	}
	return env, stdout, stderr
}

// fakeGenerator implements Generator for testing.
type fakeGenerator struct {
	input  cookbook.Input
	result *cookbook.Result
	err    error
	closed bool
}

func (f *fakeGenerator) Generate(_ context.Context, input cookbook.Input) (*cookbook.Result, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeGenerator) Close() error {
	f.closed = true
	return nil
}

// fixture paths of a small cookbook on disk.
type fixture struct {
	dir       string
	structure string
	recipes   string
}

const (
	fixtureStructure = `sections:
  - name: Mains
    recipes: [soup, stub, missing-one]
  - name: Desserts
    recipes: []
`
	fixtureSoup = `title: Soup
prep_time: 10 min
cook_time: 30 min
servings: 4
ingredients: [water, salt]
instructions: [boil]
`
	fixtureStub = `title: Stub
prep_time: ""
cook_time: ""
servings: ""
ingredients: []
instructions: []
`
)

// writeFixture creates the fixture cookbook under a temp dir.
func writeFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:       dir,
		structure: filepath.Join(dir, "cookbook_structure.yaml"),
		recipes:   filepath.Join(dir, "recipes"),
	}
	writeFile(t, f.structure, fixtureStructure)
	writeFile(t, filepath.Join(f.recipes, "soup.yaml"), fixtureSoup)
	writeFile(t, filepath.Join(f.recipes, "stub.yaml"), fixtureStub)
	writeFile(t, filepath.Join(f.recipes, "orphan.yaml"), fixtureSoup)
	return f
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
