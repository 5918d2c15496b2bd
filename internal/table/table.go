// Package table persists record collections as rows with named columns.
package table

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/starford/arbor/internal/apperr"
	"github.com/starford/arbor/internal/checksum"
	"github.com/starford/arbor/internal/models"
)

// Storage formats.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Store reads and writes a whole record collection.
type Store interface {
	// Path returns the file backing the store.
	Path() string
	// Save replaces the stored collection with records.
	Save(ctx context.Context, records []models.Record) error
	// Load returns the stored collection. A missing file yields an error
	// wrapping apperr.ErrNotFound.
	Load(ctx context.Context) ([]models.Record, error)
}

// Open returns the store for format backed by path.
func Open(format, path string) (Store, error) {
	switch format {
	case FormatCSV, "":
		return NewCSV(path), nil
	case FormatSQLite:
		return NewSQLite(path), nil
	default:
		return nil, fmt.Errorf("table: unknown format %q", format)
	}
}

// Fingerprint returns the checksum of the file backing s.
func Fingerprint(s Store) (string, error) {
	sum, err := checksum.File(s.Path())
	if err != nil {
		return "", notFound(s.Path(), err)
	}
	return sum, nil
}

// Columns returns the column order for records: the preferred columns
// followed by every extra field name sorted alphabetically.
func Columns(records []models.Record) []string {
	extra := make(map[string]struct{})
	for _, r := range records {
		for k := range r.Extra {
			extra[k] = struct{}{}
		}
	}
	rest := make([]string, 0, len(extra))
	for k := range extra {
		rest = append(rest, k)
	}
	sort.Strings(rest)

	cols := make([]string, 0, len(models.PreferredColumns)+len(rest))
	cols = append(cols, models.PreferredColumns...)
	return append(cols, rest...)
}

func notFound(path string, err error) error {
	if os.IsNotExist(err) {
		return fmt.Errorf("table: %s: %w", path, apperr.ErrNotFound)
	}
	return fmt.Errorf("table: %s: %w", path, err)
}
