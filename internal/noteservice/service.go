// Package noteservice answers viewer queries over the crawled note records.
// It is shared by the HTTP API and the MCP server.
package noteservice

import (
	"context"
	"fmt"

	"github.com/starford/arbor/internal/analysis"
	"github.com/starford/arbor/internal/apperr"
	"github.com/starford/arbor/internal/filter"
	"github.com/starford/arbor/internal/models"
	"github.com/starford/arbor/internal/table"
	"github.com/starford/arbor/internal/tree"
	"github.com/starford/arbor/internal/viewer"
)

// ViewQuery selects what a view shows.
type ViewQuery struct {
	Root      string
	Direction viewer.Direction
	Filters   filter.Constraints
}

// View is the resolved state of the tree viewer.
type View struct {
	Root          string              `json:"root"`
	Direction     viewer.Direction    `json:"direction"`
	Tree          *models.Node        `json:"tree"`
	Nodes         []string            `json:"nodes"`
	Parent        string              `json:"parent,omitempty"`
	Filters       filter.Constraints  `json:"filters"`
	FilterOptions map[string][]string `json:"filter_options"`
	Shown         int                 `json:"shown"`
	Total         int                 `json:"total"`
	Empty         bool                `json:"empty"`
}

// ReloadResult reports the outcome of a reload.
type ReloadResult struct {
	Total   int  `json:"total"`
	Changed bool `json:"changed"`
}

// Service resolves views over the records of one storage file.
type Service struct {
	store    table.Store
	cache    *viewer.Cache
	maxDepth int
}

// NewService creates a service reading store through cache. maxDepth <= 0
// selects tree.DefaultMaxDepth.
func NewService(store table.Store, cache *viewer.Cache, maxDepth int) *Service {
	if cache == nil {
		cache = viewer.NewCache()
	}
	if maxDepth <= 0 {
		maxDepth = tree.DefaultMaxDepth
	}
	return &Service{store: store, cache: cache, maxDepth: maxDepth}
}

// Source returns the path of the storage file.
func (s *Service) Source() string {
	return s.store.Path()
}

// Records returns the cached records. A missing storage file yields an error
// wrapping apperr.ErrNotFound.
func (s *Service) Records(ctx context.Context) ([]models.Record, error) {
	records, err := s.cache.Load(ctx, s.store)
	if err != nil {
		return nil, fmt.Errorf("noteservice: load: %w", err)
	}
	return records, nil
}

// View filters the records, resolves the root and builds the display tree.
func (s *Service) View(ctx context.Context, q ViewQuery) (*View, error) {
	all, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	if q.Direction == "" {
		q.Direction = viewer.Descendants
	}
	active := q.Filters.Active()

	shown := all
	if len(active) > 0 {
		shown = viewer.ApplyFilters(all, active)
	}
	d := viewer.TreeForDisplay(shown, q.Root, q.Direction, s.maxDepth)

	v := &View{
		Root:          d.Root,
		Direction:     q.Direction,
		Tree:          d.Tree,
		Nodes:         d.Nodes,
		Filters:       active,
		FilterOptions: viewer.FilterOptions(all),
		Shown:         len(shown),
		Total:         len(all),
		Empty:         d.Tree == nil,
	}
	if v.Nodes == nil {
		v.Nodes = []string{}
	}
	if p, ok := viewer.ParentOf(all, d.Root); ok && tree.Names(all).Has(p) {
		v.Parent = p
	}
	return v, nil
}

// Node returns the details of the record called name.
func (s *Service) Node(ctx context.Context, name string) (*viewer.Details, error) {
	all, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	d, ok := viewer.NodeDetails(all, name)
	if !ok {
		return nil, fmt.Errorf("noteservice: node %q: %w", name, apperr.ErrUnknownRecord)
	}
	return &d, nil
}

// Roots returns the root names sorted case-insensitively.
func (s *Service) Roots(ctx context.Context) ([]string, error) {
	all, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	roots := tree.FindRoots(all)
	if roots == nil {
		roots = []string{}
	}
	return roots, nil
}

// Stats summarises the whole collection.
func (s *Service) Stats(ctx context.Context) (analysis.Stats, error) {
	all, err := s.Records(ctx)
	if err != nil {
		return analysis.Stats{}, err
	}
	return analysis.ComputeStats(all), nil
}

// Reload reads the storage file again and replaces the cached records.
// A failed read keeps the previous records.
func (s *Service) Reload(ctx context.Context) (*ReloadResult, error) {
	records, changed, err := s.cache.Reload(ctx, s.store)
	if err != nil {
		return nil, fmt.Errorf("noteservice: reload: %w", err)
	}
	return &ReloadResult{Total: len(records), Changed: changed}, nil
}
