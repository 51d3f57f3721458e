package cookbook

import (
	"errors"
	"fmt"
	"sort"
)

// Report is the result of cross-checking a structure against a record store.
// Every list is sorted and free of duplicates. Each declared id lands in
// exactly one of Missing, Filled, Incomplete or Malformed.
type Report struct {
	Declared   []string    `json:"declared"`
	Available  []string    `json:"available"`
	Missing    []string    `json:"missing"`
	Filled     []string    `json:"filled"`
	Incomplete []string    `json:"incomplete"`
	Malformed  []string    `json:"malformed"`
	Orphaned   []string    `json:"orphaned"`
	Duplicates []Duplicate `json:"duplicates"`
}

// Duplicate is a recipe id declared more than once, with the sections it
// appears in (in manifest order, repeated if declared twice in one section).
type Duplicate struct {
	ID       string   `json:"id"`
	Sections []string `json:"sections"`
}

// Summary holds the counts of a Report.
type Summary struct {
	Declared    int `json:"declared"`
	WithRecords int `json:"withRecords"`
	Filled      int `json:"filled"`
	Incomplete  int `json:"incomplete"`
	Malformed   int `json:"malformed"`
	Missing     int `json:"missing"`
	Orphaned    int `json:"orphaned"`
	Duplicates  int `json:"duplicates"`
}

// Summary returns the counts of r.
func (r *Report) Summary() Summary {
	return Summary{
		Declared:    len(r.Declared),
		WithRecords: len(r.Filled) + len(r.Incomplete) + len(r.Malformed),
		Filled:      len(r.Filled),
		Incomplete:  len(r.Incomplete),
		Malformed:   len(r.Malformed),
		Missing:     len(r.Missing),
		Orphaned:    len(r.Orphaned),
		Duplicates:  len(r.Duplicates),
	}
}

// Clean reports whether every declared recipe has a filled, parsable record
// and no recipe is declared twice. Orphans do not count.
func (r *Report) Clean() bool {
	return len(r.Missing) == 0 && len(r.Incomplete) == 0 &&
		len(r.Malformed) == 0 && len(r.Duplicates) == 0
}

// Reconcile classifies every declared recipe against store. It never
// modifies the structure; errors are returned only when the store itself
// cannot be read.
func Reconcile(structure *Structure, store RecordStore) (*Report, error) {
	if structure == nil {
		return nil, ErrNilStructure
	}
	if store == nil {
		return nil, ErrNilLoader
	}

	ids, err := store.IDs()
	if err != nil {
		return nil, err
	}
	available := toSet(ids)

	declared := make(map[string]bool)
	placements := make(map[string][]string)
	for _, section := range structure.Sections {
		for _, id := range section.Recipes {
			placements[id] = append(placements[id], section.Name)
			declared[id] = true
		}
	}

	report := &Report{
		Declared:   sortedKeys(declared),
		Available:  sortedKeys(available),
		Missing:    []string{},
		Filled:     []string{},
		Incomplete: []string{},
		Malformed:  []string{},
		Orphaned:   []string{},
		Duplicates: []Duplicate{},
	}

	loader := NewLoader(store)
	for _, id := range report.Declared {
		if !available[id] {
			report.Missing = append(report.Missing, id)
			continue
		}
		raw, err := loader.Load(id)
		switch {
		case err == nil && raw.IsPlaceholder():
			report.Incomplete = append(report.Incomplete, id)
		case err == nil:
			report.Filled = append(report.Filled, id)
		case errors.Is(err, ErrRecordParse):
			report.Malformed = append(report.Malformed, id)
		case errors.Is(err, ErrRecordNotFound):
			// Listed but gone by the time it was read.
			report.Missing = append(report.Missing, id)
		default:
			return nil, fmt.Errorf("reconciling %s: %w", id, err)
		}
	}

	for _, id := range report.Available {
		if !declared[id] {
			report.Orphaned = append(report.Orphaned, id)
		}
	}

	for _, id := range report.Declared {
		if sections := placements[id]; len(sections) > 1 {
			report.Duplicates = append(report.Duplicates, Duplicate{ID: id, Sections: sections})
		}
	}

	return report, nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
