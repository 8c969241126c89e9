// Package store persists installed-state metadata: which frameworks are
// installed, at what version, and the content hash of what was last written.
// State lives in a single JSON document inside the steering directory.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/steerdoc-labs/steerdoc/internal/fsio"
)

// ErrNotInstalled is returned when no record exists for a framework id.
var ErrNotInstalled = errors.New("framework is not installed")

// CorruptError indicates the metadata file exists but is not valid JSON.
// Callers surface it; they must not treat it as "nothing installed".
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("installed-state metadata %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// Store reads and mutates the installed-state document. A missing file is
// valid empty state. All mutations take a cross-process file lock and
// re-read current state before writing, so check-then-act sequences in
// callers cannot clobber a concurrent mutation.
type Store struct {
	path string
	fs   fsio.FileSystem
	lock *fileLock
}

// New returns a Store over the metadata document at path.
// A nil filesystem defaults to the OS.
func New(path string, filesystem fsio.FileSystem) *Store {
	if filesystem == nil {
		filesystem = fsio.OS{}
	}
	return &Store{
		path: path,
		fs:   filesystem,
		lock: newFileLock(path),
	}
}

// Path returns the metadata file path.
func (s *Store) Path() string { return s.path }

// List returns all installed records in stable (install) order.
func (s *Store) List() ([]InstalledRecord, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Frameworks, nil
}

// Get returns the record for id, or ErrNotInstalled.
func (s *Store) Get(id string) (InstalledRecord, error) {
	doc, err := s.read()
	if err != nil {
		return InstalledRecord{}, err
	}
	for _, rec := range doc.Frameworks {
		if rec.ID == id {
			return rec, nil
		}
	}
	return InstalledRecord{}, fmt.Errorf("%q: %w", id, ErrNotInstalled)
}

// IsInstalled reports whether a record exists for id.
func (s *Store) IsInstalled(id string) (bool, error) {
	_, err := s.Get(id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotInstalled) {
		return false, nil
	}
	return false, err
}

// Upsert inserts or replaces the record for rec.ID, keeping at most one
// record per id and preserving the order of existing records.
func (s *Store) Upsert(rec InstalledRecord) error {
	return s.mutate(func(recs []InstalledRecord) ([]InstalledRecord, error) {
		for i := range recs {
			if recs[i].ID == rec.ID {
				recs[i] = rec
				return recs, nil
			}
		}
		return append(recs, rec), nil
	})
}

// Remove deletes the record for id. Returns ErrNotInstalled if absent.
func (s *Store) Remove(id string) error {
	return s.mutate(func(recs []InstalledRecord) ([]InstalledRecord, error) {
		for i := range recs {
			if recs[i].ID == id {
				return append(recs[:i], recs[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%q: %w", id, ErrNotInstalled)
	})
}

// mutate locks the metadata file, re-reads current state, applies fn, and
// atomically writes the result. Any error leaves the file untouched.
func (s *Store) mutate(fn func([]InstalledRecord) ([]InstalledRecord, error)) error {
	if err := s.lock.Lock(); err != nil {
		return err
	}
	defer s.lock.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	updated, err := fn(doc.Frameworks)
	if err != nil {
		return err
	}
	doc.Frameworks = updated

	return s.write(doc)
}

// read loads the metadata document. A missing file yields empty state;
// unparseable contents yield a *CorruptError.
func (s *Store) read() (document, error) {
	if !s.fs.Exists(s.path) {
		return document{}, nil
	}
	data, err := s.fs.Read(s.path)
	if err != nil {
		return document{}, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, &CorruptError{Path: s.path, Err: err}
	}
	return doc, nil
}

// write serializes and atomically replaces the metadata document.
func (s *Store) write(doc document) error {
	if doc.Frameworks == nil {
		doc.Frameworks = []InstalledRecord{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding installed-state metadata: %w", err)
	}
	data = append(data, '\n')

	if err := s.fs.EnsureDir(filepath.Dir(s.path)); err != nil {
		return err
	}
	return s.fs.WriteAtomic(s.path, data)
}
