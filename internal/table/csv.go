package table

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/starford/arbor/internal/models"
	"github.com/starford/arbor/internal/storage"
	"github.com/starford/arbor/internal/tree"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV stores records in a UTF-8 CSV file with a header row.
type CSV struct {
	path string
}

// NewCSV creates a CSV store for path.
func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

// Path returns the CSV file path.
func (s *CSV) Path() string {
	return s.path
}

// Save writes records sorted by name (case-insensitive), atomically
// replacing the file.
func (s *CSV) Save(_ context.Context, records []models.Record) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}
	if err := storage.WriteFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("table: save csv: %w", err)
	}
	return nil
}

// Encode renders records as CSV bytes.
func Encode(records []models.Record) ([]byte, error) {
	sorted := make([]models.Record, len(records))
	copy(sorted, records)
	tree.SortRecords(sorted)

	cols := Columns(sorted)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(cols); err != nil {
		return nil, fmt.Errorf("table: write header: %w", err)
	}
	row := make([]string, len(cols))
	for _, r := range sorted {
		for i, col := range cols {
			row[i], _ = r.Get(col)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("table: write row %q: %w", r.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("table: flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Load reads every row of the CSV file.
func (s *CSV) Load(_ context.Context) ([]models.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, notFound(s.path, err)
	}
	records, err := Decode(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	if err != nil {
		return nil, fmt.Errorf("table: %s: %w", s.path, err)
	}
	return records, nil
}

// Decode parses CSV produced by Encode. Rows without a name are skipped and
// empty extra fields are dropped.
func Decode(r io.Reader) ([]models.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []models.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	records := []models.Record{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		var rec models.Record
		for i, col := range header {
			if i >= len(row) {
				break
			}
			if _, known := rec.Get(col); !known && row[i] == "" {
				continue
			}
			rec.Set(col, row[i])
		}
		if rec.Name == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
