package install

import (
	"fmt"
	"strings"
	"time"

	"github.com/steerdoc-labs/steerdoc/internal/fsio"
)

// backupTimestamp renders t as an ISO 8601 timestamp safe for file names:
// colons and periods become hyphens.
func backupTimestamp(t time.Time) string {
	ts := t.UTC().Format(time.RFC3339)
	ts = strings.ReplaceAll(ts, ":", "-")
	ts = strings.ReplaceAll(ts, ".", "-")
	return ts
}

// BackupPath returns an unused backup path for the file at target, named
// {target}.backup-{timestamp}. Two backups of the same file in the same
// second get a -N counter suffix rather than silently colliding.
func BackupPath(fs fsio.FileSystem, target string, now time.Time) string {
	base := fmt.Sprintf("%s.backup-%s", target, backupTimestamp(now))
	if !fs.Exists(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !fs.Exists(candidate) {
			return candidate
		}
	}
}

// CreateBackup copies the file at target to a fresh backup path and returns
// that path.
func CreateBackup(fs fsio.FileSystem, target string, now time.Time) (string, error) {
	backupPath := BackupPath(fs, target, now)
	if err := fs.Copy(target, backupPath); err != nil {
		return "", fmt.Errorf("backing up %s: %w", target, err)
	}
	return backupPath, nil
}
