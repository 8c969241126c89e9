// Package fsio is the file access layer shared by the catalog, install, and
// update engines. Engines depend on the FileSystem interface so tests can
// substitute failing implementations; OS is the production implementation.
package fsio

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Permission constants.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

// FileSystem is the boundary the lifecycle engines use for all file I/O.
// WriteAtomic must never leave a partially written file at path.
type FileSystem interface {
	Exists(path string) bool
	Read(path string) ([]byte, error)
	WriteAtomic(path string, data []byte) error
	Copy(src, dst string) error
	Delete(path string) error
	EnsureDir(path string) error
	Stat(path string) (fs.FileInfo, error)
}

// OS implements FileSystem against the local disk.
type OS struct{}

// Exists reports whether path exists (file or directory).
func (OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Read returns the contents of the file at path.
func (OS) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// WriteAtomic writes data to path via a temp file in the same directory
// followed by a rename. On any failure the previous contents of path are
// untouched and the temp file is cleaned up.
func (OS) WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file for %s: %w", path, err)
	}

	if err := os.Chmod(tmpName, FilePerm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Copy duplicates a single regular file, preserving its permission bits.
func (o OS) Copy(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, info.Mode()); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return nil
}

// Delete removes the file at path. Deleting a missing file is an error so
// callers can distinguish "already gone".
func (OS) Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("deleting %s: %w", path, err)
	}
	return nil
}

// EnsureDir creates path and any missing parents.
func (OS) EnsureDir(path string) error {
	if err := os.MkdirAll(path, DirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// Stat returns file info for path.
func (OS) Stat(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return info, nil
}
