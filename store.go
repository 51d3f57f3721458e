package cookbook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RecordStore is the backing store of recipe records, keyed by identifier.
type RecordStore interface {
	// Read returns the raw record for id. When no record exists the error
	// wraps fs.ErrNotExist.
	Read(id string) ([]byte, error)

	// IDs lists every available identifier in sorted order.
	IDs() ([]string, error)
}

// recordExtensions are tried in order when reading a record.
var recordExtensions = []string{".yaml", ".yml"}

// ValidateRecipeID checks that id can be used as a file name inside the
// recipes folder.
func ValidateRecipeID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRecipeID)
	}
	if id == "." || id == ".." || strings.ContainsAny(id, "/\\\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidRecipeID, id)
	}
	return nil
}

// DirStore reads records from a folder where record "x" is the file
// "x.yaml" (or "x.yml").
type DirStore struct {
	dir string
}

// NewDirStore creates a DirStore over dir. The folder is not touched until
// the first read.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Dir returns the folder the store reads from.
func (s *DirStore) Dir() string {
	return s.dir
}

// Path returns the file a new record for id should be written to.
func (s *DirStore) Path(id string) (string, error) {
	if err := ValidateRecipeID(id); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, id+recordExtensions[0]), nil
}

// Read implements RecordStore. Every call re-reads the file.
func (s *DirStore) Read(id string) ([]byte, error) {
	if err := ValidateRecipeID(id); err != nil {
		return nil, err
	}
	for _, ext := range recordExtensions {
		path := filepath.Join(s.dir, id+ext)
		data, err := os.ReadFile(path) // #nosec G304 -- id validated above
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: filepath.Join(s.dir, id+recordExtensions[0]), Err: fs.ErrNotExist}
}

// IDs implements RecordStore. A missing folder holds no records.
func (s *DirStore) IDs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing recipes: %w", err)
	}

	seen := make(map[string]bool, len(entries))
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		id := strings.TrimSuffix(name, ext)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// MapStore is an in-memory RecordStore.
type MapStore map[string][]byte

// Read implements RecordStore.
func (m MapStore) Read(id string) ([]byte, error) {
	data, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("record %q: %w", id, fs.ErrNotExist)
	}
	return data, nil
}

// IDs implements RecordStore.
func (m MapStore) IDs() ([]string, error) {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Compile-time interface checks.
var (
	_ RecordStore = (*DirStore)(nil)
	_ RecordStore = MapStore(nil)
)
