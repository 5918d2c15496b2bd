// Package crawler scans a vault and turns its documents into records.
package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/starford/arbor/internal/models"
	"github.com/starford/arbor/internal/parser"
	"github.com/starford/arbor/internal/storage"
	"github.com/starford/arbor/internal/table"
	"github.com/starford/arbor/internal/tree"
)

// Output file names written at the vault root.
const (
	RecordsFile       = "vault_notes.csv"
	ReferenceTreeFile = "reference_tree.md"
)

// Crawl reads every visible document of store in traversal order and
// extracts one record per document. Unreadable documents are logged and
// skipped. When two documents share a name the first one wins.
func Crawl(ctx context.Context, store storage.Provider, logger *slog.Logger) ([]models.Record, error) {
	paths, err := store.List("")
	if err != nil {
		return nil, fmt.Errorf("crawler: list: %w", err)
	}

	records := make([]models.Record, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := store.Read(p)
		if err != nil {
			logger.Warn("crawler: skip unreadable document",
				slog.String("path", p), slog.String("error", err.Error()))
			continue
		}
		rec := newRecord(p, parser.Parse(data).Fields)
		if first, dup := seen[rec.Name]; dup {
			logger.Warn("crawler: duplicate name, keeping first",
				slog.String("name", rec.Name),
				slog.String("kept", first),
				slog.String("skipped", p))
			continue
		}
		seen[rec.Name] = p
		records = append(records, rec)
	}
	return records, nil
}

func newRecord(rel string, fields map[string]string) models.Record {
	rec := models.Record{
		Name:     strings.TrimSuffix(path.Base(rel), storage.DocumentExt),
		FilePath: rel,
	}
	for k, v := range fields {
		switch k {
		case models.ColumnName, models.ColumnFilePath:
			// derived from the file, never from frontmatter
		case models.ColumnParent:
			if p, ok := parser.ExtractParent(v); ok {
				rec.Parent = p
			}
		default:
			rec.Set(k, v)
		}
	}
	return rec
}

// ReferenceTree renders the forest of records as indented wiki links, one
// tree per root in root order. A name recurring on its own ancestor chain
// is left out.
func ReferenceTree(records []models.Record) string {
	children := tree.BuildChildrenMap(records)
	var b strings.Builder
	for _, root := range tree.FindRoots(records) {
		writeBranch(&b, root, children, 0, nil)
	}
	return b.String()
}

func writeBranch(b *strings.Builder, name string, children tree.ChildrenMap, indent int, visited map[string]bool) {
	if visited[name] {
		return
	}
	chain := make(map[string]bool, len(visited)+1)
	for k := range visited {
		chain[k] = true
	}
	chain[name] = true

	if indent == 0 {
		fmt.Fprintf(b, "[[%s]]\n", name)
	} else {
		fmt.Fprintf(b, "%s- [[%s]]\n", strings.Repeat("\t", indent-1), name)
	}
	for _, child := range children[name] {
		writeBranch(b, child, children, indent+1, chain)
	}
}

// Options configures Run.
type Options struct {
	// SQLitePath, when set, also mirrors the records into a SQLite database.
	SQLitePath string
	Logger     *slog.Logger
}

// Summary reports what Run produced.
type Summary struct {
	Vault       string
	Records     int
	RecordsPath string // empty when nothing was written
	TreePath    string
}

// Run crawls the vault at vaultPath and writes the records table and the
// reference tree at its root.
func Run(ctx context.Context, vaultPath string, opts Options) (*Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fs, err := storage.NewFS(vaultPath)
	if err != nil {
		return nil, fmt.Errorf("crawler: %w", err)
	}
	logger.Info("crawler: crawling vault", slog.String("vault", fs.Root()))

	records, err := Crawl(ctx, fs, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("crawler: found notes", slog.Int("count", len(records)))

	sum := &Summary{Vault: fs.Root(), Records: len(records)}

	if len(records) == 0 {
		logger.Warn("crawler: no notes found to write")
	} else {
		csvPath := filepath.Join(fs.Root(), RecordsFile)
		if err := table.NewCSV(csvPath).Save(ctx, records); err != nil {
			return nil, fmt.Errorf("crawler: %w", err)
		}
		sum.RecordsPath = csvPath
		logger.Info("crawler: records written", slog.String("path", csvPath), slog.Int("count", len(records)))

		if opts.SQLitePath != "" {
			if err := table.NewSQLite(opts.SQLitePath).Save(ctx, records); err != nil {
				return nil, fmt.Errorf("crawler: %w", err)
			}
			logger.Info("crawler: sqlite mirror written", slog.String("path", opts.SQLitePath))
		}
	}

	if err := fs.Write(ReferenceTreeFile, []byte(ReferenceTree(records))); err != nil {
		return nil, fmt.Errorf("crawler: %w", err)
	}
	sum.TreePath = filepath.Join(fs.Root(), ReferenceTreeFile)
	logger.Info("crawler: reference tree written", slog.String("path", sum.TreePath))

	return sum, nil
}
