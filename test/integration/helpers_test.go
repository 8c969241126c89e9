//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/steerdoc-labs/steerdoc/internal/catalog"
	"github.com/steerdoc-labs/steerdoc/internal/install"
	"github.com/steerdoc-labs/steerdoc/internal/store"
	"github.com/steerdoc-labs/steerdoc/internal/update"
)

// testEnv holds the isolated directories and engines for one test.
type testEnv struct {
	CatalogRoot string // frameworks.yaml + templates/
	ProjectDir  string // mock project; steering docs land in ProjectDir/steering
	SteeringDir string

	Loader    *catalog.Loader
	Store     *store.Store
	Installer *install.Engine
	Updater   *update.Engine
}

// setupTestEnv creates a sandboxed catalog and project and wires the engines
// over them, the same way the CLI wires them at startup.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		CatalogRoot: t.TempDir(),
		ProjectDir:  t.TempDir(),
	}
	env.SteeringDir = filepath.Join(env.ProjectDir, "steering")

	setupCatalog(t, env.CatalogRoot)

	env.Loader = catalog.New(env.CatalogRoot, nil)
	env.Store = store.New(filepath.Join(env.SteeringDir, ".steerdoc.json"), nil)
	env.Installer = install.NewEngine(env.Loader, env.Store, nil, env.SteeringDir)
	env.Updater = update.NewEngine(env.Loader, env.Store, env.Installer, nil)

	return env
}

// setupCatalog writes a synthetic catalog: two frameworks, one depending on
// the other.
func setupCatalog(t *testing.T, root string) {
	t.Helper()

	writeFile(t, filepath.Join(root, catalog.ManifestFileName), `frameworks:
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
    dependencies:
      - tdd
`)
	writeFile(t, filepath.Join(root, "templates", "tdd.md"), sampleDocument("Test-Driven Development"))
	writeFile(t, filepath.Join(root, "templates", "api-design.md"), sampleDocument("API Design Guidelines"))
}

// bumpCatalog rewrites one framework's manifest entry to a new version with
// new template content, then reloads the catalog.
func bumpCatalog(t *testing.T, env *testEnv, id, version, fileName, content string) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(env.CatalogRoot, catalog.ManifestFileName))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(string(data), "\n")
	inEntry := false
	for i, line := range lines {
		if strings.Contains(line, "id: "+id) {
			inEntry = true
		} else if strings.Contains(line, "- id:") {
			inEntry = false
		}
		if inEntry && strings.Contains(line, "version:") {
			indent := line[:strings.Index(line, "version:")]
			lines[i] = indent + "version: " + version
			break
		}
	}
	writeFile(t, filepath.Join(env.CatalogRoot, catalog.ManifestFileName), strings.Join(lines, "\n"))
	writeFile(t, filepath.Join(env.CatalogRoot, "templates", fileName), content)

	if err := env.Loader.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
}

// sampleDocument produces a steering document that passes validation.
func sampleDocument(title string) string {
	return `# ` + title + `

## Purpose

Keep the team aligned on one way of working so reviews argue about the
problem, not the conventions.

## Key Concepts

- One source of truth per decision
- Conventions beat preferences

## Best Practices

- Keep rules short and checkable
- Link every rule to a reason

For example:

` + "```\nprefer small, reviewable changes\n```" + `

## Summary

Write the convention down once and let the document settle the argument.
`
}

// writeFile creates a file at the given path, creating parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
