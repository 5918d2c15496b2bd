// Package testutil provides shared test helpers for setting up vaults and record tables.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/starford/arbor/internal/models"
	"github.com/starford/arbor/internal/storage"
	"github.com/starford/arbor/internal/table"
)

// TestVault creates a temporary vault directory with a storage.Provider.
func TestVault(t *testing.T) (string, storage.Provider) {
	t.Helper()
	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}
	return vaultDir, store
}

// WriteNote writes a vault document at rel with the given content.
func WriteNote(t *testing.T, store storage.Provider, rel, content string) {
	t.Helper()
	if err := store.Write(rel, []byte(content)); err != nil {
		t.Fatal(err)
	}
}

// ExerciseRecords returns a small collection:
//
//	exercise ─┬─ agility ─┬─ box jumps
//	          │           └─ sprints
//	          └─ cardio ──── zone 2
func ExerciseRecords() []models.Record {
	return []models.Record{
		{Name: "exercise", FilePath: "exercise.md", Status: "active", Category: "fitness"},
		{Name: "agility", FilePath: "agility.md", Parent: "exercise", Status: "active", Category: "fitness"},
		{Name: "cardio", FilePath: "cardio.md", Parent: "exercise", Status: "inactive", Category: "fitness"},
		{Name: "box jumps", FilePath: "box jumps.md", Parent: "agility", Status: "active", Category: "plyo"},
		{Name: "sprints", FilePath: "sprints.md", Parent: "agility", Status: "inactive", Category: "running"},
		{Name: "zone 2", FilePath: "zone 2.md", Parent: "cardio", Status: "active", Category: "running"},
	}
}

// TestCSV saves records into a CSV store in a temporary directory and
// returns its path.
func TestCSV(t *testing.T, records []models.Record) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vault_notes.csv")
	if err := table.NewCSV(path).Save(context.Background(), records); err != nil {
		t.Fatal(err)
	}
	return path
}
