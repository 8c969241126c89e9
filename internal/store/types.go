package store

import "time"

// InstalledRecord tracks one installed framework. At most one record exists
// per framework id. ContentHash is the digest of the bytes this system last
// wrote to the target file; it is the baseline for customization detection.
type InstalledRecord struct {
	ID           string     `json:"id"`
	Version      string     `json:"version"`
	InstalledAt  time.Time  `json:"installedAt"`
	Customized   bool       `json:"customized"`
	CustomizedAt *time.Time `json:"customizedAt,omitempty"`
	ContentHash  string     `json:"contentHash"`
}

// document is the on-disk shape of the installed-state metadata file.
type document struct {
	Frameworks []InstalledRecord `json:"frameworks"`
}
