package qbank

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadError reports a document that could not be read or parsed. The source
// label lets the caller tell the user which file failed; the session keeps
// running on whatever else loaded.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Document is one parsed JSON source. Immutable once loaded; identified by
// its source label (file name for disk files, supplied name for uploads).
type Document struct {
	Source string
	Path   string // empty for uploaded documents
	Raw    []byte
	Root   *Value
}

// LoadFile reads and parses a JSON file. The document's source label is the
// file's base name.
func LoadFile(path string) (*Document, error) {
	name := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}
	doc, err := LoadBytes(name, data)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// LoadBytes parses uploaded JSON content under the given source label.
func LoadBytes(name string, data []byte) (*Document, error) {
	root, err := ParseValue(data)
	if err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}
	return &Document{Source: name, Raw: data, Root: root}, nil
}
