package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// fileLock guards the metadata file across processes. Two CLI invocations
// mutating installed state at the same time serialize on this lock; the
// read-modify-write inside is then safe.
type fileLock struct {
	flock *flock.Flock
}

// newFileLock creates a lock beside the metadata file at path.
func newFileLock(path string) *fileLock {
	return &fileLock{flock: flock.New(path + ".lock")}
}

// Lock acquires an exclusive lock, creating parent directories as needed.
// Blocks until the lock is available.
func (l *fileLock) Lock() error {
	dir := filepath.Dir(l.flock.Path())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating lock directory %s: %w", dir, err)
	}
	if err := l.flock.Lock(); err != nil {
		return fmt.Errorf("acquiring lock %s: %w", l.flock.Path(), err)
	}
	return nil
}

// Unlock releases the lock. Safe to call when not held.
func (l *fileLock) Unlock() error {
	return l.flock.Unlock()
}
