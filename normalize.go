package cookbook

// Normalize resolves the shape variants of a raw record into a Recipe.
// It never fails: absent fields become empty values and empty items are
// dropped. Instruction numbering is left to the sinks.
func Normalize(raw *RawRecipe) Recipe {
	if raw == nil {
		return Recipe{}
	}
	return Recipe{
		ID:           raw.ID,
		Title:        raw.Title,
		PrepTime:     raw.PrepTime,
		CookTime:     raw.CookTime,
		Servings:     raw.Servings,
		Ingredients:  normalizeItems(raw.Ingredients),
		Instructions: normalizeItems(raw.Instructions),
		Notes:        normalizeNotes(raw.Notes),
		Commentary:   raw.Commentary,
		Attribution:  raw.Attribution,
	}
}

// normalizeItems keeps group order and item order. A flat list becomes a
// single group without heading; an empty flat list yields no groups. Grouped
// input keeps every heading, even when all its items are empty.
func normalizeItems(list ItemList) []Group {
	switch list.Kind {
	case ItemsGrouped:
		groups := make([]Group, 0, len(list.Groups))
		for _, g := range list.Groups {
			groups = append(groups, Group{Heading: g.Heading, Items: nonEmpty(g.Items)})
		}
		return groups
	default:
		items := nonEmpty(list.Flat)
		if len(items) == 0 {
			return nil
		}
		return []Group{{Items: items}}
	}
}

func normalizeNotes(n Notes) []string {
	switch n.Kind {
	case NotesSingle:
		if n.Text == "" {
			return nil
		}
		return []string{n.Text}
	case NotesMany:
		return nonEmpty(n.Items)
	default:
		return nil
	}
}

// nonEmpty returns items without empty strings. The result is never an
// alias of the input.
func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
