package update

import "errors"

// ErrFileMissing indicates an installed record whose target file is gone
// from disk. Reported per-item during sweeps; fatal only for single-item
// operations that need the file's content.
var ErrFileMissing = errors.New("installed file is missing")

// Direction classifies how the catalog version relates to the installed one.
type Direction string

const (
	// DirectionUpgrade means the catalog version is semver-newer.
	DirectionUpgrade Direction = "upgrade"
	// DirectionDowngrade means the catalog version is semver-older.
	DirectionDowngrade Direction = "downgrade"
	// DirectionChanged means the versions differ but at least one is not
	// parseable as semver. The candidate is still emitted: detection is
	// exact inequality, semver only classifies.
	DirectionChanged Direction = "changed"
)

// Candidate is one framework with a pending version change.
type Candidate struct {
	ID               string
	Name             string
	InstalledVersion string
	AvailableVersion string
	Direction        Direction
	Customized       bool
	// FileMissing flags records whose target file is gone; customization
	// state is unknown for those.
	FileMissing bool
}

// Options controls a single update.
type Options struct {
	// Force proceeds on a customized target. The overwrite is always
	// backup-guarded in that case.
	Force bool
	// CreateBackup also snapshots non-customized targets before writing.
	CreateBackup bool
}

// Status is the outcome class of an update attempt.
type Status string

const (
	// StatusUpdated means the target was rewritten and re-recorded.
	StatusUpdated Status = "updated"
	// StatusCancelled means the target is customized and Force was not
	// set; nothing was written. An expected outcome, not a failure.
	StatusCancelled Status = "cancelled"
)

// Result reports a single update outcome.
type Result struct {
	Status      Status
	ID          string
	FromVersion string
	ToVersion   string
	Path        string
	BackupPath  string
}

// Preview carries both document texts so the caller can render a diff
// before confirming a destructive update.
type Preview struct {
	ID               string
	Path             string
	Current          []byte
	Incoming         []byte
	InstalledVersion string
	IncomingVersion  string
	Customized       bool
}

// ItemOutcome is one framework's result within a batch update.
type ItemOutcome struct {
	ID     string
	Result Result
	Err    error
}

// Summary aggregates a batch update. Individual failures never abort the
// batch; each framework gets an outcome.
type Summary struct {
	Outcomes []ItemOutcome
}

// Updated counts frameworks whose files were rewritten.
func (s Summary) Updated() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err == nil && o.Result.Status == StatusUpdated {
			n++
		}
	}
	return n
}

// Cancelled counts customized frameworks skipped without Force.
func (s Summary) Cancelled() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err == nil && o.Result.Status == StatusCancelled {
			n++
		}
	}
	return n
}

// Failed counts frameworks whose update errored.
func (s Summary) Failed() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
