package cookbook

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/alnah/go-cookbook/internal/yamlutil"
)

// RecordLoader resolves a recipe identifier to a raw record.
type RecordLoader interface {
	// Load returns the record for id, an error wrapping ErrRecordNotFound
	// when none exists, or an error wrapping ErrRecordParse when the record
	// is not a YAML mapping.
	Load(id string) (*RawRecipe, error)
}

// Loader reads records from a RecordStore. It does not cache.
type Loader struct {
	store RecordStore
}

// NewLoader creates a Loader over store.
func NewLoader(store RecordStore) *Loader {
	return &Loader{store: store}
}

// Store returns the underlying record store.
func (l *Loader) Store() RecordStore {
	return l.store
}

// Load implements RecordLoader.
func (l *Loader) Load(id string) (*RawRecipe, error) {
	data, err := l.store.Read(id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, ErrInvalidRecipeID) {
			return nil, fmt.Errorf("%w: %s: %v", ErrRecordNotFound, id, err)
		}
		return nil, fmt.Errorf("reading recipe %s: %w", id, err)
	}
	return ParseRecipe(id, data)
}

// ParseRecipe decodes one record. Unknown keys are ignored.
func ParseRecipe(id string, data []byte) (*RawRecipe, error) {
	var tree any
	if err := yamlutil.UnmarshalOrdered(data, &tree); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRecordParse, id, err)
	}
	root, ok := tree.(yamlutil.MapSlice)
	if !ok {
		return nil, fmt.Errorf("%w: %s: top level is not a mapping", ErrRecordParse, id)
	}

	raw := &RawRecipe{ID: id}
	for _, item := range root {
		key, _ := scalarText(item.Key)
		switch key {
		case "title":
			raw.Title, _ = scalarText(item.Value)
		case "prep_time":
			raw.PrepTime, _ = scalarText(item.Value)
		case "cook_time":
			raw.CookTime, _ = scalarText(item.Value)
		case "servings":
			raw.Servings, _ = scalarText(item.Value)
		case "ingredients":
			raw.Ingredients = toItemList(item.Value)
		case "instructions":
			raw.Instructions = toItemList(item.Value)
		case "notes":
			raw.Notes = toNotes(item.Value)
		case "commentary":
			raw.Commentary, _ = scalarText(item.Value)
		case "attribution":
			raw.Attribution, _ = scalarText(item.Value)
		}
	}
	return raw, nil
}

// scalarText renders a decoded YAML scalar as text. Null becomes "".
// The second result is false for sequences and mappings.
func scalarText(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case yamlutil.MapSlice, []any:
		return "", false
	default:
		return fmt.Sprint(t), true
	}
}

// toItemList converts an ingredients or instructions value.
//
//	sequence -> flat list (nested non-scalars dropped)
//	mapping  -> groups in key order; a scalar value is a one-item group
//	scalar   -> one-item flat list
//	null     -> empty flat list
func toItemList(v any) ItemList {
	switch t := v.(type) {
	case nil:
		return ItemList{}
	case []any:
		return FlatItems(scalarItems(t)...)
	case yamlutil.MapSlice:
		groups := make([]Group, 0, len(t))
		for _, entry := range t {
			heading, _ := scalarText(entry.Key)
			var items []string
			switch value := entry.Value.(type) {
			case []any:
				items = scalarItems(value)
			default:
				if text, ok := scalarText(value); ok && text != "" {
					items = []string{text}
				}
			}
			groups = append(groups, Group{Heading: heading, Items: items})
		}
		return GroupedItems(groups...)
	default:
		if text, ok := scalarText(t); ok {
			return FlatItems(text)
		}
		return ItemList{}
	}
}

// toNotes converts a notes value. A mapping carries no usable shape and
// reads as absent.
func toNotes(v any) Notes {
	switch t := v.(type) {
	case nil:
		return Notes{}
	case []any:
		return ManyNotes(scalarItems(t)...)
	case yamlutil.MapSlice:
		return Notes{}
	default:
		text, _ := scalarText(t)
		return SingleNote(text)
	}
}

func scalarItems(values []any) []string {
	items := make([]string, 0, len(values))
	for _, value := range values {
		if text, ok := scalarText(value); ok {
			items = append(items, text)
		}
	}
	return items
}

// Compile-time interface check.
var _ RecordLoader = (*Loader)(nil)
