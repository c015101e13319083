package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader reads and validates profile documents from a single directory.
// Profile ids are bare names: the id "scene_default" maps to the file
// "scene_default.json" inside the loader's directory and nothing else.
type Loader struct {
	dir string
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir returns the profiles directory this loader reads from.
func (l *Loader) Dir() string { return l.dir }

// Path returns the file path a profile id resolves to, for display purposes.
// It does not check existence.
func (l *Loader) Path(id string) string {
	return filepath.Join(l.dir, id+".json")
}

// validID rejects anything that is not a bare file name. Ids never address
// outside the profiles directory; the open below goes through os.OpenRoot as
// a second line of defense.
func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}

// Load reads, parses and validates the profile with the given id.
// It returns ErrNotFound (wrapped), *ParseError or *SchemaError.
func (l *Loader) Load(id string) (*Profile, error) {
	if !validID(id) {
		return nil, fmt.Errorf("profile id %q: %w", id, ErrNotFound)
	}

	root, err := os.OpenRoot(l.dir)
	if err != nil {
		return nil, fmt.Errorf("open profiles directory %s: %w", l.dir, err)
	}
	defer func() {
		_ = root.Close()
	}()

	file, err := root.Open(id + ".json")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("profile %q: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("open profile %q: %w", id, err)
	}
	defer func() {
		_ = file.Close()
	}()

	return LoadFromReader(id+".json", file)
}

// LoadFromReader parses and validates a profile document from r. The name is
// used in error messages only. Validation is two layers: the embedded JSON
// Schema catches wrong shapes, the structural pass catches what a schema
// cannot (duplicate pool keys survive the ordered decode and are rejected
// here).
func LoadFromReader(name string, r io.Reader) (*Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", name, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}

	if issues := validateSchema(doc); len(issues) > 0 {
		return nil, &SchemaError{Path: name, Issues: issues}
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}

	if err := p.Validate(); err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			schemaErr.Path = name
		}
		return nil, err
	}

	return &p, nil
}
