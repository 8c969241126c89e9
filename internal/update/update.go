// Package update is the update engine: it detects pending version changes
// against the catalog, detects user customization by content hash, and
// performs backup-guarded overwrites. Writing and recording go through the
// installation engine's primitive so both engines share one write path.
package update

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/steerdoc-labs/steerdoc/internal/catalog"
	"github.com/steerdoc-labs/steerdoc/internal/checksum"
	"github.com/steerdoc-labs/steerdoc/internal/fsio"
	"github.com/steerdoc-labs/steerdoc/internal/install"
	"github.com/steerdoc-labs/steerdoc/internal/store"
)

// Engine performs update checks and guarded updates.
type Engine struct {
	catalog   *catalog.Loader
	store     *store.Store
	installer *install.Engine
	fs        fsio.FileSystem
	now       func() time.Time
}

// NewEngine returns an update engine sharing the installer's write path.
// A nil filesystem defaults to the OS.
func NewEngine(cat *catalog.Loader, st *store.Store, installer *install.Engine, filesystem fsio.FileSystem) *Engine {
	if filesystem == nil {
		filesystem = fsio.OS{}
	}
	return &Engine{
		catalog:   cat,
		store:     st,
		installer: installer,
		fs:        filesystem,
		now:       time.Now,
	}
}

// CheckForUpdates sweeps every installed record and returns a candidate for
// each framework whose catalog version differs from the installed version.
// Frameworks retired from the catalog are skipped. A missing target file is
// reported on the candidate, never fatal to the sweep. An empty installed
// set yields an empty list.
func (e *Engine) CheckForUpdates(ctx context.Context) ([]Candidate, error) {
	recs, err := e.store.List()
	if err != nil {
		return nil, err
	}

	var candidates []Candidate
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return candidates, err
		}

		entry, err := e.catalog.GetByID(rec.ID)
		if errors.Is(err, catalog.ErrNotFound) {
			continue // retired from the manifest, tolerated
		}
		if err != nil {
			return nil, err
		}

		if entry.Version == rec.Version {
			continue
		}

		c := Candidate{
			ID:               rec.ID,
			Name:             entry.Name,
			InstalledVersion: rec.Version,
			AvailableVersion: entry.Version,
			Direction:        classify(rec.Version, entry.Version),
		}

		customized, err := e.customized(rec, entry)
		if errors.Is(err, ErrFileMissing) {
			c.FileMissing = true
		} else if err != nil {
			return nil, err
		} else {
			c.Customized = customized
		}

		candidates = append(candidates, c)
	}
	return candidates, nil
}

// IsCustomized reports whether the installed file for id has drifted from
// the content this system last wrote. The check is hash-based: reverting
// the file to the exact written bytes clears the flag. Detected drift (or
// reversion) is persisted to the installed record.
func (e *Engine) IsCustomized(id string) (bool, error) {
	rec, err := e.store.Get(id)
	if err != nil {
		return false, err
	}
	entry, err := e.catalog.GetByID(id)
	if err != nil {
		return false, err
	}

	customized, err := e.customized(rec, entry)
	if err != nil {
		return false, err
	}

	if customized != rec.Customized {
		rec.Customized = customized
		if customized {
			t := e.now().UTC()
			rec.CustomizedAt = &t
		} else {
			rec.CustomizedAt = nil
		}
		if err := e.store.Upsert(rec); err != nil {
			return customized, fmt.Errorf("recording customization state of %q: %w", id, err)
		}
	}
	return customized, nil
}

// Preview returns the current and incoming document texts for id so the
// caller can render a diff before confirming an update.
func (e *Engine) Preview(id string) (Preview, error) {
	rec, err := e.store.Get(id)
	if err != nil {
		return Preview{}, err
	}
	entry, err := e.catalog.GetByID(id)
	if err != nil {
		return Preview{}, err
	}

	target := e.installer.TargetPath(entry)
	if !e.fs.Exists(target) {
		return Preview{}, fmt.Errorf("%s: %w", target, ErrFileMissing)
	}
	current, err := e.fs.Read(target)
	if err != nil {
		return Preview{}, err
	}
	incoming, err := e.catalog.Content(entry)
	if err != nil {
		return Preview{}, fmt.Errorf("loading content for %q: %w", id, err)
	}

	return Preview{
		ID:               id,
		Path:             target,
		Current:          current,
		Incoming:         incoming,
		InstalledVersion: rec.Version,
		IncomingVersion:  entry.Version,
		Customized:       !checksum.Matches(current, rec.ContentHash),
	}, nil
}

// Update brings a single installed framework to the current catalog
// content. A customized target is refused unless opts.Force is set, in
// which case the existing file is backed up first; refusal returns a
// StatusCancelled result, not an error. Any write failure leaves the file
// and metadata untouched.
func (e *Engine) Update(ctx context.Context, id string, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	rec, err := e.store.Get(id)
	if err != nil {
		return Result{}, err
	}
	entry, err := e.catalog.GetByID(id)
	if err != nil {
		return Result{}, err
	}

	target := e.installer.TargetPath(entry)
	customized, err := e.customized(rec, entry)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Status:      StatusUpdated,
		ID:          id,
		FromVersion: rec.Version,
		ToVersion:   entry.Version,
		Path:        target,
	}

	if customized && !opts.Force {
		result.Status = StatusCancelled
		return result, nil
	}

	incoming, err := e.catalog.Content(entry)
	if err != nil {
		return Result{}, fmt.Errorf("loading content for %q: %w", id, err)
	}

	// Customized content is irrecoverable once overwritten: always back it
	// up. Non-customized targets are backed up only on request.
	if (customized || opts.CreateBackup) && e.fs.Exists(target) {
		backupPath, err := install.CreateBackup(e.fs, target, e.now())
		if err != nil {
			return Result{}, err
		}
		result.BackupPath = backupPath
	}

	if err := e.installer.WriteAndRecord(entry, incoming); err != nil {
		return Result{}, err
	}
	return result, nil
}

// UpdateAll updates every pending candidate, isolating per-framework
// failures so one bad entry cannot abort the batch. The context is checked
// between frameworks; cancellation stops the remainder and returns the
// outcomes collected so far along with ctx.Err().
func (e *Engine) UpdateAll(ctx context.Context, opts Options) (Summary, error) {
	candidates, err := e.CheckForUpdates(ctx)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		res, err := e.Update(ctx, c.ID, opts)
		summary.Outcomes = append(summary.Outcomes, ItemOutcome{
			ID:     c.ID,
			Result: res,
			Err:    err,
		})
	}
	return summary, nil
}

// customized compares the live target hash to the recorded hash.
func (e *Engine) customized(rec store.InstalledRecord, entry catalog.Entry) (bool, error) {
	target := e.installer.TargetPath(entry)
	if !e.fs.Exists(target) {
		return false, fmt.Errorf("%s: %w", target, ErrFileMissing)
	}
	data, err := e.fs.Read(target)
	if err != nil {
		return false, err
	}
	return !checksum.Matches(data, rec.ContentHash), nil
}
