package viewer

import (
	"context"
	"sync"

	"github.com/starford/arbor/internal/models"
	"github.com/starford/arbor/internal/table"
)

type entry struct {
	records     []models.Record
	fingerprint string
}

// Cache holds the records of each storage file loaded by the process, keyed
// by the file path. An entry changes only through Reload.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// Load returns the records of store, reading the file on first use only.
// Callers must treat the returned slice as read-only.
func (c *Cache) Load(ctx context.Context, store table.Store) ([]models.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[store.Path()]; ok {
		return e.records, nil
	}
	e, err := read(ctx, store)
	if err != nil {
		return nil, err
	}
	c.entries[store.Path()] = e
	return e.records, nil
}

// Reload re-reads store and reports whether its content differs from what
// was cached. A store that was never loaded counts as changed. When the
// re-read fails the previous entry stays in place.
func (c *Cache) Reload(ctx context.Context, store table.Store) (records []models.Record, changed bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := read(ctx, store)
	if err != nil {
		return nil, false, err
	}
	prev, had := c.entries[store.Path()]
	c.entries[store.Path()] = e
	return e.records, !had || prev.fingerprint != e.fingerprint, nil
}

func read(ctx context.Context, store table.Store) (*entry, error) {
	fp, err := table.Fingerprint(store)
	if err != nil {
		return nil, err
	}
	records, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &entry{records: records, fingerprint: fp}, nil
}
