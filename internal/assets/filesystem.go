package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader loads assets from a directory on disk. Unlike an
// os.DirFS-backed FSLoader it resolves symlinks and refuses any file that
// lands outside the base directory.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader returns a loader rooted at basePath, which must be a
// readable directory. Errors wrap ErrInvalidBasePath.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	root, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if real, err := filepath.EvalSymlinks(root); err == nil {
		root = real
	}

	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, root)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, root)
	}
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: root}, nil
}

// Load implements Loader, reading {basePath}/{styles|templates}/{name}{ext}.
func (f *FilesystemLoader) Load(kind Kind, name string) (string, error) {
	if err := validate(kind, name); err != nil {
		return "", err
	}

	p := filepath.Join(f.basePath, filepath.FromSlash(kind.file(name)))
	if err := f.contain(p); err != nil {
		return "", err
	}

	data, err := os.ReadFile(p) // #nosec G304 -- name validated, path contained
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", kind.notFound(), name)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

// Names returns the sorted names of the kind's files below basePath.
func (f *FilesystemLoader) Names(kind Kind) ([]string, error) {
	return NewFSLoader(os.DirFS(f.basePath)).Names(kind)
}

// contain fails unless p, with symlinks resolved, is inside basePath. A
// missing file is checked lexically and fails later on read.
func (f *FilesystemLoader) contain(p string) error {
	abs, err := filepath.Abs(p)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}
	if !strings.HasPrefix(abs, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return nil
}

var _ Loader = (*FilesystemLoader)(nil)
