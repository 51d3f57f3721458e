package cookbook

// Section is one named part of the cookbook with its recipes in print order.
type Section struct {
	Name    string
	Recipes []string
}

// Structure is the parsed structure manifest. Every section is rendered,
// including sections with no recipes.
type Structure struct {
	Sections []Section
}

// Group is an ordered list of items under an optional subheading.
// An empty Heading means the list has no subheading.
type Group struct {
	Heading string
	Items   []string
}

// ItemsKind tells which shape an ItemList was written in.
type ItemsKind int

const (
	// ItemsFlat is a plain ordered list.
	ItemsFlat ItemsKind = iota
	// ItemsGrouped is an ordered mapping of subheading to list.
	ItemsGrouped
)

// ItemList holds an ingredients or instructions field as written in the
// record. Only the field matching Kind is meaningful. The zero value is an
// empty flat list.
type ItemList struct {
	Kind   ItemsKind
	Flat   []string
	Groups []Group
}

// FlatItems returns a flat ItemList.
func FlatItems(items ...string) ItemList {
	return ItemList{Kind: ItemsFlat, Flat: items}
}

// GroupedItems returns a grouped ItemList in the given group order.
func GroupedItems(groups ...Group) ItemList {
	return ItemList{Kind: ItemsGrouped, Groups: groups}
}

// NotesKind tells which shape a notes field was written in.
type NotesKind int

const (
	// NotesNone means the field was absent or null.
	NotesNone NotesKind = iota
	// NotesSingle is one block of text.
	NotesSingle
	// NotesMany is an ordered list of texts.
	NotesMany
)

// Notes holds a notes field as written in the record.
type Notes struct {
	Kind  NotesKind
	Text  string
	Items []string
}

// SingleNote returns Notes holding one text.
func SingleNote(text string) Notes {
	return Notes{Kind: NotesSingle, Text: text}
}

// ManyNotes returns Notes holding an ordered list.
func ManyNotes(items ...string) Notes {
	return Notes{Kind: NotesMany, Items: items}
}

// RawRecipe is a recipe record as loaded, before normalization.
// Every field except Title may be empty.
type RawRecipe struct {
	ID           string
	Title        string
	PrepTime     string
	CookTime     string
	Servings     string
	Ingredients  ItemList
	Instructions ItemList
	Notes        Notes
	Commentary   string
	Attribution  string
}

// IsPlaceholder reports whether the record is an unfilled template: prep
// time, cook time and servings are all empty.
func (r *RawRecipe) IsPlaceholder() bool {
	return r.PrepTime == "" && r.CookTime == "" && r.Servings == ""
}

// Recipe is the normalized form consumed by every sink.
type Recipe struct {
	ID           string
	Title        string
	PrepTime     string
	CookTime     string
	Servings     string
	Ingredients  []Group
	Instructions []Group
	Notes        []string
	Commentary   string
	Attribution  string
}
