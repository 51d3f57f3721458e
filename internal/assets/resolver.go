package assets

import (
	"errors"
	"sort"
)

// namedLoader is a Loader that can list what it holds.
type namedLoader interface {
	Loader
	Names(kind Kind) ([]string, error)
}

// AssetResolver tries a custom directory first and falls back to the
// embedded assets when the custom one lacks the requested file.
type AssetResolver struct {
	custom   namedLoader // nil without a custom base path
	embedded namedLoader
}

// NewAssetResolver returns a resolver over the embedded assets, overlaid by
// customBasePath when it is not empty.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}
	custom, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = custom
	return r, nil
}

// Load implements Loader. Only not-found errors fall through to the
// embedded assets; invalid names and read failures are returned as is.
func (r *AssetResolver) Load(kind Kind, name string) (string, error) {
	if r.custom != nil {
		content, err := r.custom.Load(kind, name)
		if err == nil || !errors.Is(err, kind.notFound()) {
			return content, err
		}
	}
	return r.embedded.Load(kind, name)
}

// LoadStyle loads styles/<name>.css.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.Load(Style, name)
}

// LoadTemplate loads templates/<name>.html.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.Load(Template, name)
}

// Names returns the sorted union of custom and embedded names of kind.
func (r *AssetResolver) Names(kind Kind) ([]string, error) {
	seen := make(map[string]bool)
	for _, l := range []namedLoader{r.custom, r.embedded} {
		if l == nil {
			continue
		}
		names, err := l.Names(kind)
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			seen[n] = true
		}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out, nil
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ Loader = (*AssetResolver)(nil)
