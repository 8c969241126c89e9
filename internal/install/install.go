// Package install is the installation engine: it resolves catalog entries,
// handles conflicts with already-present target files, and records installed
// state. Its write-and-record primitive is shared with the update engine.
package install

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/steerdoc-labs/steerdoc/internal/catalog"
	"github.com/steerdoc-labs/steerdoc/internal/checksum"
	"github.com/steerdoc-labs/steerdoc/internal/fsio"
	"github.com/steerdoc-labs/steerdoc/internal/store"
)

// mergeSeparator is inserted between existing and incoming content on a
// merge install. Merge is naive concatenation with conflict markers — a
// deliberate placeholder, not a structural merge.
const mergeSeparator = "\n\n<!-- ======= existing content above / incoming content below ======= -->\n\n"

// Options controls conflict resolution during install.
type Options struct {
	// Overwrite replaces an existing target file.
	Overwrite bool
	// Merge concatenates existing and incoming content with conflict
	// markers. Mutually exclusive with Overwrite; Overwrite wins if both
	// are set.
	Merge bool
	// CreateBackup snapshots an existing target before it is rewritten.
	CreateBackup bool
}

// Status is the outcome class of an install attempt.
type Status string

const (
	// StatusInstalled means the target was written and recorded.
	StatusInstalled Status = "installed"
	// StatusConflict means the target already exists and no resolution
	// option was set; nothing was written.
	StatusConflict Status = "conflict"
	// StatusMerged means existing and incoming content were concatenated.
	StatusMerged Status = "merged"
)

// Conflict describes the existing file that blocked an install.
type Conflict struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Result reports an install outcome. Conflict is non-nil only for
// StatusConflict, which is an expected outcome rather than an error.
type Result struct {
	Status     Status
	ID         string
	Version    string
	Path       string
	BackupPath string
	Conflict   *Conflict
	// MissingDependencies lists declared dependency ids not yet installed.
	// Informational; install proceeds regardless.
	MissingDependencies []string
}

// Engine performs installs into a steering directory.
type Engine struct {
	catalog     *catalog.Loader
	store       *store.Store
	fs          fsio.FileSystem
	steeringDir string
	now         func() time.Time
}

// NewEngine returns an installation engine. A nil filesystem defaults to
// the OS.
func NewEngine(cat *catalog.Loader, st *store.Store, filesystem fsio.FileSystem, steeringDir string) *Engine {
	if filesystem == nil {
		filesystem = fsio.OS{}
	}
	return &Engine{
		catalog:     cat,
		store:       st,
		fs:          filesystem,
		steeringDir: steeringDir,
		now:         time.Now,
	}
}

// TargetPath resolves the install path for an entry.
func (e *Engine) TargetPath(entry catalog.Entry) string {
	return filepath.Join(e.steeringDir, entry.FileName)
}

// IsInstalled reports whether id has an installed record.
func (e *Engine) IsInstalled(id string) (bool, error) {
	return e.store.IsInstalled(id)
}

// Install installs the framework with the given id.
//
// If the target file already exists and neither Overwrite nor Merge is set,
// Install returns a StatusConflict result describing the existing file and
// writes nothing. The conflict check runs again immediately before the
// final write: a file that appears between the decision and the write is
// treated as a fresh conflict, never clobbered.
func (e *Engine) Install(id string, opts Options) (Result, error) {
	entry, err := e.catalog.GetByID(id)
	if err != nil {
		return Result{}, err
	}

	content, err := e.catalog.Content(entry)
	if err != nil {
		return Result{}, fmt.Errorf("loading content for %q: %w", id, err)
	}

	target := e.TargetPath(entry)
	if err := e.fs.EnsureDir(filepath.Dir(target)); err != nil {
		return Result{}, err
	}

	result := Result{
		Status:              StatusInstalled,
		ID:                  entry.ID,
		Version:             entry.Version,
		Path:                target,
		MissingDependencies: e.missingDependencies(entry),
	}

	// Conflict check, repeated right before the write below.
	if conflict := e.detectConflict(target, opts); conflict != nil {
		result.Status = StatusConflict
		result.Conflict = conflict
		return result, nil
	}

	if e.fs.Exists(target) {
		if opts.CreateBackup {
			backupPath, err := CreateBackup(e.fs, target, e.now())
			if err != nil {
				return Result{}, err
			}
			result.BackupPath = backupPath
		}
		if opts.Merge && !opts.Overwrite {
			existing, err := e.fs.Read(target)
			if err != nil {
				return Result{}, err
			}
			content = append(append(existing, []byte(mergeSeparator)...), content...)
			result.Status = StatusMerged
		}
	}

	// Re-check: the target may have appeared while content was being
	// prepared (concurrent install of the same id).
	if conflict := e.detectConflict(target, opts); conflict != nil {
		result.Status = StatusConflict
		result.Conflict = conflict
		result.BackupPath = ""
		return result, nil
	}

	if err := e.WriteAndRecord(entry, content); err != nil {
		return Result{}, err
	}
	return result, nil
}

// WriteAndRecord atomically writes content to the entry's target path and
// upserts the installed record with the hash of exactly what was written.
// A write failure leaves both the file and the metadata untouched.
func (e *Engine) WriteAndRecord(entry catalog.Entry, content []byte) error {
	target := e.TargetPath(entry)
	if err := e.fs.WriteAtomic(target, content); err != nil {
		return err
	}

	rec := store.InstalledRecord{
		ID:          entry.ID,
		Version:     entry.Version,
		InstalledAt: e.now().UTC(),
		Customized:  false,
		ContentHash: checksum.Sum(content),
	}
	if err := e.store.Upsert(rec); err != nil {
		return fmt.Errorf("recording install of %q: %w", entry.ID, err)
	}
	return nil
}

// Uninstall removes the installed record for id and, unless keepFile is
// set, deletes the target file. A target already missing from disk is not
// an error.
func (e *Engine) Uninstall(id string, keepFile bool) error {
	if _, err := e.store.Get(id); err != nil {
		return err
	}

	// Resolve the target before touching the record. A retired catalog
	// entry leaves no way to locate the file; the record is still removed.
	var target string
	if entry, err := e.catalog.GetByID(id); err == nil {
		target = e.TargetPath(entry)
	}

	if err := e.store.Remove(id); err != nil {
		return err
	}

	if keepFile || target == "" {
		return nil
	}
	if e.fs.Exists(target) {
		return e.fs.Delete(target)
	}
	return nil
}

// detectConflict returns conflict details when target exists and opts allow
// no resolution, or nil when the write may proceed.
func (e *Engine) detectConflict(target string, opts Options) *Conflict {
	if opts.Overwrite || opts.Merge {
		return nil
	}
	info, err := e.fs.Stat(target)
	if err != nil {
		return nil
	}
	return &Conflict{
		Path:    target,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}

// missingDependencies lists declared dependencies without installed records.
func (e *Engine) missingDependencies(entry catalog.Entry) []string {
	var missing []string
	for _, dep := range entry.Dependencies {
		installed, err := e.store.IsInstalled(dep)
		if err != nil || !installed {
			missing = append(missing, dep)
		}
	}
	return missing
}
