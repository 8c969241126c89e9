package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validManifest = `frameworks:
  - id: tdd
    name: Test-Driven Development
    description: Red-green-refactor workflow
    category: testing
    version: 1.0.0
    fileName: tdd.md
  - id: api-design
    name: API Design Guidelines
    description: REST conventions and error contracts
    category: development
    version: 2.0.0
    fileName: api-design.md
`

func writeRoot(t *testing.T, manifest string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ManifestFileName), []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}
	tmplDir := filepath.Join(root, "templates")
	if err := os.MkdirAll(tmplDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmplDir, "tdd.md"), []byte("# TDD\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestListAvailablePreservesManifestOrder(t *testing.T) {
	l := New(writeRoot(t, validManifest), nil)
	entries, err := l.ListAvailable()
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].ID != "tdd" || entries[1].ID != "api-design" {
		t.Errorf("order = %q, %q", entries[0].ID, entries[1].ID)
	}
	if entries[0].Category != CategoryTesting {
		t.Errorf("category = %q", entries[0].Category)
	}
}

func TestGetByID(t *testing.T) {
	l := New(writeRoot(t, validManifest), nil)
	entry, err := l.GetByID("tdd")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if entry.Name != "Test-Driven Development" {
		t.Errorf("Name = %q", entry.Name)
	}

	_, err = l.GetByID("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID error = %v, want ErrNotFound", err)
	}
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	l := New(writeRoot(t, validManifest), nil)
	entries, err := l.Search("")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("len = %d, want 2", len(entries))
	}
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	l := New(writeRoot(t, validManifest), nil)

	entries, err := l.Search("DRIVEN")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].ID != "tdd" {
		t.Errorf("Search(DRIVEN) = %v", entries)
	}

	// Category matches too.
	entries, err = l.Search("development")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("Search(development) len = %d, want 2 (name and category hits)", len(entries))
	}
}

func TestSearchTreatsQueryAsLiteralText(t *testing.T) {
	l := New(writeRoot(t, validManifest), nil)
	// Regex metacharacters must not crash or match everything.
	entries, err := l.Search("[a-z]+(")
	if err != nil {
		t.Fatalf("Search with metacharacters: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Search metachars len = %d, want 0", len(entries))
	}
}

func TestInvalidYAMLIsParseError(t *testing.T) {
	l := New(writeRoot(t, "frameworks: [\n"), nil)
	_, err := l.ListAvailable()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
}

func TestMissingRequiredFieldIsSchemaError(t *testing.T) {
	manifest := `frameworks:
  - id: tdd
    name: Test-Driven Development
    category: testing
    version: 1.0.0
    fileName: tdd.md
`
	l := New(writeRoot(t, manifest), nil)
	_, err := l.ListAvailable()
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error = %v, want *SchemaError", err)
	}
	if len(schemaErr.Issues) == 0 {
		t.Error("SchemaError carries no issues")
	}
}

func TestUnknownCategoryIsSchemaError(t *testing.T) {
	manifest := `frameworks:
  - id: tdd
    name: Test-Driven Development
    description: x
    category: vibes
    version: 1.0.0
    fileName: tdd.md
`
	l := New(writeRoot(t, manifest), nil)
	_, err := l.ListAvailable()
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error = %v, want *SchemaError", err)
	}
}

func TestDuplicateIDIsIntegrityError(t *testing.T) {
	manifest := `frameworks:
  - id: tdd
    name: One
    description: x
    category: testing
    version: 1.0.0
    fileName: one.md
  - id: tdd
    name: Two
    description: y
    category: testing
    version: 2.0.0
    fileName: two.md
`
	l := New(writeRoot(t, manifest), nil)
	_, err := l.ListAvailable()
	var integrityErr *IntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("error = %v, want *IntegrityError", err)
	}
	if integrityErr.ID != "tdd" {
		t.Errorf("IntegrityError.ID = %q, want tdd", integrityErr.ID)
	}
}

func TestFailedReloadKeepsPreviousCache(t *testing.T) {
	root := writeRoot(t, validManifest)
	l := New(root, nil)
	if _, err := l.ListAvailable(); err != nil {
		t.Fatal(err)
	}

	// Corrupt the manifest on disk, then reload.
	if err := os.WriteFile(filepath.Join(root, ManifestFileName), []byte("frameworks: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := l.Reload(); err == nil {
		t.Fatal("Reload of corrupt manifest succeeded")
	}

	entries, err := l.ListAvailable()
	if err != nil {
		t.Fatalf("ListAvailable after failed reload: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("cache lost after failed reload: len = %d", len(entries))
	}
}

func TestContentReadsTemplate(t *testing.T) {
	l := New(writeRoot(t, validManifest), nil)
	entry, err := l.GetByID("tdd")
	if err != nil {
		t.Fatal(err)
	}
	data, err := l.Content(entry)
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	if string(data) != "# TDD\n" {
		t.Errorf("Content = %q", data)
	}
}

func TestEmbeddedCatalogLoads(t *testing.T) {
	l := New("", nil)
	entries, err := l.ListAvailable()
	if err != nil {
		t.Fatalf("embedded catalog failed to load: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("embedded catalog is empty")
	}
	for _, e := range entries {
		if !e.Category.Valid() {
			t.Errorf("entry %q has invalid category %q", e.ID, e.Category)
		}
		data, err := l.Content(e)
		if err != nil {
			t.Errorf("embedded template for %q: %v", e.ID, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("embedded template for %q is empty", e.ID)
		}
	}
}
