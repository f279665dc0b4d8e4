// Package pyproject loads, merges and writes pyproject.toml manifests.
//
// A Document is the parsed root table. Nested tables are map[string]any and
// arrays are []any, matching what go-toml produces when decoding into an
// untyped map. Merging never mutates its inputs.
package pyproject

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// FileName is the manifest file name inside a workspace root.
const FileName = "pyproject.toml"

// Document is the root table of a manifest.
type Document map[string]any

// ErrMalformed matches any manifest parse failure via errors.Is.
var ErrMalformed = errors.New("malformed manifest")

// MalformedError reports a manifest that exists but is not valid TOML.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("invalid TOML syntax in %s: %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrMalformed) succeed for every MalformedError.
func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

// Load reads the manifest at path. A missing file yields an empty document.
func Load(fsys afero.Fs, path string) (Document, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Document{}, nil
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}
	return doc, nil
}

// Parse decodes manifest text.
func Parse(data []byte) (Document, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return Document(raw), nil
}

// Write serializes doc and replaces the file at path.
func Write(fsys afero.Fs, doc Document, path string) error {
	data, err := doc.Marshal()
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Marshal returns the TOML encoding of the document. Output is deterministic:
// keys are sorted and plain values precede sub-tables.
func (d Document) Marshal() ([]byte, error) {
	if len(d) == 0 {
		return []byte{}, nil
	}
	data, err := toml.Marshal(map[string]any(d))
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// IsEmpty reports whether the document has no top-level keys.
func (d Document) IsEmpty() bool {
	return len(d) == 0
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return Document{}
	}
	return Document(cloneTable(d))
}

// Lookup walks nested tables and returns the value at the key path.
func (d Document) Lookup(keys ...string) (any, bool) {
	var current any = map[string]any(d)
	for _, key := range keys {
		table, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = table[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Table returns the nested table at the key path.
func (d Document) Table(keys ...string) (map[string]any, bool) {
	v, ok := d.Lookup(keys...)
	if !ok {
		return nil, false
	}
	table, ok := v.(map[string]any)
	return table, ok
}

// String returns the string at the key path, or "" when absent or not a string.
func (d Document) String(keys ...string) string {
	v, ok := d.Lookup(keys...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Strings returns the string elements of the array at the key path.
// Non-string elements are skipped.
func (d Document) Strings(keys ...string) []string {
	v, ok := d.Lookup(keys...)
	if !ok {
		return nil
	}
	var out []string
	switch list := v.(type) {
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, list...)
	}
	return out
}
