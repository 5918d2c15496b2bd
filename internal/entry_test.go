package internal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/starford/arbor/internal/table"
	"github.com/starford/arbor/internal/testutil"
)

func TestNewApplication_RequiresConfig(t *testing.T) {
	if _, err := newApplication(nil); err == nil {
		t.Fatal("expected error without config")
	}
}

func TestNewService_FromConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Vault.Path = t.TempDir()

	app, err := newApplication([]Option{WithConfig(cfg)})
	if err != nil {
		t.Fatal(err)
	}
	svc, err := app.newService()
	if err != nil {
		t.Fatalf("newService: %v", err)
	}
	if want := filepath.Join(cfg.Vault.Path, "vault_notes.csv"); svc.Source() != want {
		t.Errorf("source = %q, want %q", svc.Source(), want)
	}
}

func TestNewService_UnknownFormat(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Records.Format = "parquet"

	app, _ := newApplication([]Option{WithConfig(cfg)})
	if _, err := app.newService(); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestNewService_WithStore(t *testing.T) {
	store := table.NewCSV(testutil.TestCSV(t, testutil.ExerciseRecords()))
	app, _ := newApplication([]Option{WithConfig(NewDefaultConfig()), WithStore(store)})

	svc, err := app.newService()
	if err != nil {
		t.Fatal(err)
	}
	roots, err := svc.Roots(context.Background())
	if err != nil {
		t.Fatalf("Roots: %v", err)
	}
	if len(roots) != 1 || roots[0] != "exercise" {
		t.Errorf("roots = %v", roots)
	}
}
