package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed styles/*.css templates/*.html
var builtin embed.FS

// FSLoader loads assets from an fs.FS laid out as styles/ and templates/.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader returns a loader reading from fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// NewEmbeddedLoader returns a loader over the assets compiled into the binary.
func NewEmbeddedLoader() *FSLoader {
	return NewFSLoader(builtin)
}

// Load implements Loader.
func (l *FSLoader) Load(kind Kind, name string) (string, error) {
	if err := validate(kind, name); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(l.fsys, kind.file(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %q", kind.notFound(), name)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

// Names returns the sorted names of every loadable asset of kind.
func (l *FSLoader) Names(kind Kind) ([]string, error) {
	matches, err := fs.Glob(l.fsys, kind.dir()+"/*"+kind.ext())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(path.Base(m), kind.ext())
		if ValidateAssetName(name) == nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

var _ Loader = (*FSLoader)(nil)
