//go:build integration

package integration_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/steerdoc-labs/steerdoc/internal/install"
	"github.com/steerdoc-labs/steerdoc/internal/store"
	"github.com/steerdoc-labs/steerdoc/internal/update"
	"github.com/steerdoc-labs/steerdoc/internal/validate"
)

// TestFullLifecycle walks a framework through its whole life:
// install -> customize -> detect -> forced update with backup -> uninstall.
func TestFullLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	// Step 1: Install with a dependency warning.
	result, err := env.Installer.Install("api-design", install.Options{})
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if len(result.MissingDependencies) != 1 || result.MissingDependencies[0] != "tdd" {
		t.Errorf("MissingDependencies = %v, want [tdd]", result.MissingDependencies)
	}
	if _, err := env.Installer.Install("tdd", install.Options{}); err != nil {
		t.Fatalf("Install tdd: %v", err)
	}
	tddPath := filepath.Join(env.SteeringDir, "tdd.md")
	assertFileExists(t, tddPath)
	assertFileExists(t, filepath.Join(env.SteeringDir, ".steerdoc.json"))

	// Step 2: The installed document passes validation.
	data, err := os.ReadFile(tddPath)
	if err != nil {
		t.Fatal(err)
	}
	if report := validate.Validate(string(data)); !report.Valid {
		t.Errorf("installed document fails validation: %+v", report.Errors)
	}

	// Step 3: Everything is up to date, nothing customized.
	candidates, err := env.Updater.CheckForUpdates(ctx)
	if err != nil {
		t.Fatalf("CheckForUpdates: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("candidates = %v, want none", candidates)
	}

	// Step 4: The user edits the installed file.
	writeFile(t, tddPath, "# TDD\n\nMy team does it differently.\n")
	customized, err := env.Updater.IsCustomized("tdd")
	if err != nil {
		t.Fatalf("IsCustomized: %v", err)
	}
	if !customized {
		t.Fatal("user edit not detected as customization")
	}

	// Step 5: A new catalog version appears and is detected.
	bumpCatalog(t, env, "tdd", "1.1.0", "tdd.md", sampleDocument("Test-Driven Development v1.1"))
	candidates, err = env.Updater.CheckForUpdates(ctx)
	if err != nil {
		t.Fatalf("CheckForUpdates: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}
	if c := candidates[0]; c.ID != "tdd" || c.Direction != update.DirectionUpgrade || !c.Customized {
		t.Errorf("candidate = %+v", c)
	}

	// Step 6: Update without Force is refused; nothing changes.
	upd, err := env.Updater.Update(ctx, "tdd", update.Options{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if upd.Status != update.StatusCancelled {
		t.Fatalf("Status = %q, want cancelled", upd.Status)
	}
	assertFileContains(t, tddPath, "My team does it differently.")

	// Step 7: Forced update backs up the customization and rewrites the file.
	upd, err = env.Updater.Update(ctx, "tdd", update.Options{Force: true})
	if err != nil {
		t.Fatalf("Update --force: %v", err)
	}
	if upd.Status != update.StatusUpdated {
		t.Fatalf("Status = %q, want updated", upd.Status)
	}
	if upd.BackupPath == "" {
		t.Fatal("forced update of customized file produced no backup")
	}
	assertFileContains(t, upd.BackupPath, "My team does it differently.")
	assertFileContains(t, tddPath, "Test-Driven Development v1.1")

	rec, err := env.Store.Get("tdd")
	if err != nil {
		t.Fatalf("Get record: %v", err)
	}
	if rec.Version != "1.1.0" || rec.Customized {
		t.Errorf("record after forced update = %+v", rec)
	}

	// Step 8: Uninstall removes the file and the record; the backup stays.
	if err := env.Installer.Uninstall("tdd", false); err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	assertFileNotExists(t, tddPath)
	assertFileExists(t, upd.BackupPath)
	if _, err := env.Store.Get("tdd"); !errors.Is(err, store.ErrNotInstalled) {
		t.Errorf("Get after uninstall = %v, want ErrNotInstalled", err)
	}
	assertFileExists(t, filepath.Join(env.SteeringDir, "api-design.md"))
}

// TestBatchUpdateAcrossFrameworks exercises UpdateAll over a mixed installed
// set: one clean pending update, one customized framework held back.
func TestBatchUpdateAcrossFrameworks(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	if _, err := env.Installer.Install("tdd", install.Options{}); err != nil {
		t.Fatalf("Install tdd: %v", err)
	}
	if _, err := env.Installer.Install("api-design", install.Options{}); err != nil {
		t.Fatalf("Install api-design: %v", err)
	}

	// Customize api-design, then bump both frameworks.
	apiPath := filepath.Join(env.SteeringDir, "api-design.md")
	writeFile(t, apiPath, "# API\n\nhouse rules\n")
	bumpCatalog(t, env, "tdd", "1.1.0", "tdd.md", sampleDocument("TDD v1.1"))
	bumpCatalog(t, env, "api-design", "2.1.0", "api-design.md", sampleDocument("API v2.1"))

	summary, err := env.Updater.UpdateAll(ctx, update.Options{})
	if err != nil {
		t.Fatalf("UpdateAll: %v", err)
	}
	if summary.Updated() != 1 || summary.Cancelled() != 1 || summary.Failed() != 0 {
		t.Errorf("updated=%d cancelled=%d failed=%d, want 1/1/0",
			summary.Updated(), summary.Cancelled(), summary.Failed())
	}

	// The clean framework moved, the customized one did not.
	assertFileContains(t, filepath.Join(env.SteeringDir, "tdd.md"), "TDD v1.1")
	assertFileContains(t, apiPath, "house rules")

	// A second sweep still reports the held-back framework.
	candidates, err := env.Updater.CheckForUpdates(ctx)
	if err != nil {
		t.Fatalf("CheckForUpdates: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != "api-design" {
		t.Errorf("candidates after batch = %+v, want only api-design", candidates)
	}
}

// TestInstallConflictAndMergeFlow covers the pre-existing-file path: conflict
// report first, then a merge that keeps both contents.
func TestInstallConflictAndMergeFlow(t *testing.T) {
	env := setupTestEnv(t)

	target := filepath.Join(env.SteeringDir, "tdd.md")
	writeFile(t, target, "# My Notes\n\nhand-written before steerdoc\n")

	// Plain install reports the conflict and touches nothing.
	result, err := env.Installer.Install("tdd", install.Options{})
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if result.Status != install.StatusConflict {
		t.Fatalf("Status = %q, want conflict", result.Status)
	}
	assertFileContains(t, target, "hand-written before steerdoc")

	// Merge keeps the existing content above the incoming document.
	result, err = env.Installer.Install("tdd", install.Options{Merge: true, CreateBackup: true})
	if err != nil {
		t.Fatalf("Install --merge: %v", err)
	}
	if result.Status != install.StatusMerged {
		t.Fatalf("Status = %q, want merged", result.Status)
	}
	if result.BackupPath == "" {
		t.Fatal("merge with CreateBackup produced no backup")
	}
	assertFileContains(t, target, "hand-written before steerdoc")
	assertFileContains(t, target, "Test-Driven Development")
	assertFileContains(t, result.BackupPath, "hand-written before steerdoc")

	// The merged file is what customization detection is measured against.
	customized, err := env.Updater.IsCustomized("tdd")
	if err != nil {
		t.Fatalf("IsCustomized: %v", err)
	}
	if customized {
		t.Error("freshly merged file reports customized")
	}
}
