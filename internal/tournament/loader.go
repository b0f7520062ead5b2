package tournament

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Load reads and validates a single tournament definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return &def, nil
}

// Catalog is the set of tournament definitions served by the API,
// loaded once at startup. Read-only after construction.
type Catalog struct {
	byID  map[string]*Definition
	order []string
}

// NewCatalog builds a catalog from already-validated definitions.
func NewCatalog(defs ...*Definition) (*Catalog, error) {
	catalog := &Catalog{byID: make(map[string]*Definition, len(defs))}
	for _, def := range defs {
		if _, exists := catalog.byID[def.ID]; exists {
			return nil, fmt.Errorf("catalog: duplicate tournament id %q", def.ID)
		}
		catalog.byID[def.ID] = def
		catalog.order = append(catalog.order, def.ID)
	}
	sort.Strings(catalog.order)
	return catalog, nil
}

// LoadDir loads every *.json definition in dir concurrently. A single
// invalid document fails the whole load — a catalog silently missing a
// tournament is worse than a startup error.
func LoadDir(ctx context.Context, dir string, logger *slog.Logger) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}

	catalog := &Catalog{byID: make(map[string]*Definition)}
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		g.Go(func() error {
			def, err := Load(path)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			if _, exists := catalog.byID[def.ID]; exists {
				return fmt.Errorf("catalog: duplicate tournament id %q (%s)", def.ID, path)
			}
			catalog.byID[def.ID] = def
			catalog.order = append(catalog.order, def.ID)

			logger.Info("Tournament loaded",
				"id", def.ID,
				"groups", len(def.Groups),
				"rounds", len(def.Rounds),
				"results", len(def.Results))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(catalog.order)
	return catalog, nil
}

// Get returns the definition with the given ID.
func (c *Catalog) Get(id string) (*Definition, bool) {
	def, ok := c.byID[id]
	return def, ok
}

// List returns every definition, ordered by ID.
func (c *Catalog) List() []*Definition {
	defs := make([]*Definition, 0, len(c.order))
	for _, id := range c.order {
		defs = append(defs, c.byID[id])
	}
	return defs
}

// Len reports the number of loaded tournaments.
func (c *Catalog) Len() int {
	return len(c.order)
}
