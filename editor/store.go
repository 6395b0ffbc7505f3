package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/maxnichols/gravwell/levels"
)

// PersistenceError wraps a failure to read or write the custom-level
// slot. The editor's in-memory state is unaffected by one.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("custom level %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ErrNoCustomLevel is returned by LoadCustom when the slot has never been
// written.
var ErrNoCustomLevel = errors.New("no custom level saved")

// Store is the custom-level slot: a single schema, distinct from the
// catalog.
type Store interface {
	SaveCustom(s *levels.Schema) error
	LoadCustom() (*levels.Schema, error)
}

const customFileName = "custom.json"

// FileStore keeps the custom slot as an indented JSON file under Dir, so
// it can be inspected, hand-edited, and watched for changes.
type FileStore struct {
	Dir string
}

// Path is the slot file's location on disk.
func (f FileStore) Path() string {
	return filepath.Join(f.Dir, customFileName)
}

func (f FileStore) SaveCustom(s *levels.Schema) error {
	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	if err := os.WriteFile(f.Path(), data, 0644); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

func (f FileStore) LoadCustom() (*levels.Schema, error) {
	data, err := os.ReadFile(f.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &PersistenceError{Op: "load", Err: ErrNoCustomLevel}
		}
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	s, err := levels.Parse(data)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	return s, nil
}

// MemoryStore holds the slot in memory; used by tests and as a fallback
// when the disk is unavailable.
type MemoryStore struct {
	schema *levels.Schema
}

func (m *MemoryStore) SaveCustom(s *levels.Schema) error {
	data, err := json.Marshal(s)
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	parsed, err := levels.Parse(data)
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	m.schema = parsed
	return nil
}

func (m *MemoryStore) LoadCustom() (*levels.Schema, error) {
	if m.schema == nil {
		return nil, &PersistenceError{Op: "load", Err: ErrNoCustomLevel}
	}
	return m.schema, nil
}
