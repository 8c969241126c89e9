package catalog

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/steerdoc-labs/steerdoc/internal/fsio"
)

const (
	// ManifestFileName is the catalog manifest inside a catalog root.
	ManifestFileName = "frameworks.yaml"

	// templatesDir holds the framework document bodies beside the manifest.
	templatesDir = "templates"

	// embeddedSource labels the bundled catalog in error messages.
	embeddedSource = "embedded"
)

//go:embed default
var defaultCatalog embed.FS

// Loader loads and caches the framework catalog. The manifest is read once
// per Loader lifetime; Reload discards the cache explicitly. A failed load
// or reload never corrupts a previously cached catalog.
type Loader struct {
	fs   fsio.FileSystem
	root string // external catalog root; "" means the embedded catalog

	mu      sync.RWMutex
	entries []Entry
	byID    map[string]Entry
	loaded  bool
}

// New returns a Loader for the catalog at root. An empty root selects the
// catalog bundled into the binary. A nil filesystem defaults to the OS.
func New(root string, filesystem fsio.FileSystem) *Loader {
	if filesystem == nil {
		filesystem = fsio.OS{}
	}
	return &Loader{fs: filesystem, root: root}
}

// Source identifies the catalog origin for error messages.
func (l *Loader) Source() string {
	if l.root == "" {
		return embeddedSource
	}
	return filepath.Join(l.root, ManifestFileName)
}

// ListAvailable returns all catalog entries in manifest order.
func (l *Loader) ListAvailable() ([]Entry, error) {
	if err := l.ensureLoaded(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out, nil
}

// GetByID returns the entry for id, or ErrNotFound.
func (l *Loader) GetByID(id string) (Entry, error) {
	if err := l.ensureLoaded(); err != nil {
		return Entry{}, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	entry, ok := l.byID[id]
	if !ok {
		return Entry{}, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	return entry, nil
}

// Search returns entries whose name, description, or category contains the
// query (case-insensitive). The query is literal text, never a pattern.
// An empty query returns the full catalog in manifest order.
func (l *Loader) Search(query string) ([]Entry, error) {
	entries, err := l.ListAvailable()
	if err != nil {
		return nil, err
	}
	if query == "" {
		return entries, nil
	}

	q := strings.ToLower(query)
	var matched []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.Description), q) ||
			strings.Contains(strings.ToLower(string(e.Category)), q) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Content returns the document body for an entry.
func (l *Loader) Content(entry Entry) ([]byte, error) {
	if l.root == "" {
		data, err := defaultCatalog.ReadFile("default/" + templatesDir + "/" + entry.FileName)
		if err != nil {
			return nil, fmt.Errorf("reading embedded template %s: %w", entry.FileName, err)
		}
		return data, nil
	}
	return l.fs.Read(filepath.Join(l.root, templatesDir, entry.FileName))
}

// Reload discards the cache and loads the manifest again. If the reload
// fails, the previously cached catalog remains in effect.
func (l *Loader) Reload() error {
	entries, byID, err := l.load()
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.entries = entries
	l.byID = byID
	l.loaded = true
	l.mu.Unlock()
	return nil
}

// ensureLoaded performs the initial load on first use.
func (l *Loader) ensureLoaded() error {
	l.mu.RLock()
	loaded := l.loaded
	l.mu.RUnlock()
	if loaded {
		return nil
	}
	return l.Reload()
}

// load reads, validates, and indexes the manifest without touching the cache.
func (l *Loader) load() ([]Entry, map[string]Entry, error) {
	data, err := l.readManifest()
	if err != nil {
		return nil, nil, err
	}

	if err := validateManifest(l.Source(), data); err != nil {
		return nil, nil, err
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, nil, &ParseError{Source: l.Source(), Err: err}
	}

	byID := make(map[string]Entry, len(m.Frameworks))
	for _, entry := range m.Frameworks {
		if _, dup := byID[entry.ID]; dup {
			return nil, nil, &IntegrityError{Source: l.Source(), ID: entry.ID}
		}
		byID[entry.ID] = entry
	}

	return m.Frameworks, byID, nil
}

// readManifest fetches the raw manifest bytes from the configured root.
func (l *Loader) readManifest() ([]byte, error) {
	if l.root == "" {
		data, err := defaultCatalog.ReadFile("default/" + ManifestFileName)
		if err != nil {
			return nil, fmt.Errorf("reading embedded manifest: %w", err)
		}
		return data, nil
	}
	return l.fs.Read(filepath.Join(l.root, ManifestFileName))
}
