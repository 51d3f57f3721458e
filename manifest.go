package cookbook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alnah/go-cookbook/internal/yamlutil"
)

// LoadStructure reads and parses the structure manifest at path.
// Returns ErrManifestNotFound or ErrManifestParse.
func LoadStructure(path string) (*Structure, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("reading structure manifest: %w", err)
	}
	structure, err := ParseStructure(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return structure, nil
}

// ParseStructure parses manifest content of the form
//
//	sections:
//	  - name: Mains
//	    recipes: [soup, stew]
//
// A section without recipes (or with recipes: null) is an empty section.
func ParseStructure(data []byte) (*Structure, error) {
	var tree any
	if err := yamlutil.UnmarshalOrdered(data, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestParse, err)
	}
	root, ok := tree.(yamlutil.MapSlice)
	if !ok {
		return nil, fmt.Errorf("%w: top level is not a mapping", ErrManifestParse)
	}

	rawSections, found := lookup(root, "sections")
	if !found {
		return nil, fmt.Errorf("%w: missing 'sections' key", ErrManifestParse)
	}
	var list []any
	switch v := rawSections.(type) {
	case nil:
	case []any:
		list = v
	default:
		return nil, fmt.Errorf("%w: 'sections' must be a list", ErrManifestParse)
	}

	structure := &Structure{Sections: make([]Section, 0, len(list))}
	for i, entry := range list {
		section, err := parseSection(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: section %d: %v", ErrManifestParse, i+1, err)
		}
		structure.Sections = append(structure.Sections, section)
	}
	return structure, nil
}

func parseSection(entry any) (Section, error) {
	m, ok := entry.(yamlutil.MapSlice)
	if !ok {
		return Section{}, errors.New("not a mapping")
	}

	rawName, _ := lookup(m, "name")
	name, ok := scalarText(rawName)
	if !ok || name == "" {
		return Section{}, errors.New("name is required")
	}

	section := Section{Name: name}
	rawRecipes, _ := lookup(m, "recipes")
	switch v := rawRecipes.(type) {
	case nil:
	case []any:
		section.Recipes = make([]string, 0, len(v))
		for j, item := range v {
			id, ok := scalarText(item)
			if !ok || id == "" {
				return Section{}, fmt.Errorf("%s: recipe %d is not an identifier", name, j+1)
			}
			section.Recipes = append(section.Recipes, id)
		}
	default:
		return Section{}, fmt.Errorf("%s: 'recipes' must be a list", name)
	}
	return section, nil
}

func lookup(m yamlutil.MapSlice, key string) (any, bool) {
	for _, item := range m {
		if k, _ := scalarText(item.Key); k == key {
			return item.Value, true
		}
	}
	return nil, false
}
