package catalog

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	games    map[string]Game
	regions  map[string][]Region
	packages []Package
}

// NewMemoryRepository constructs an in-memory catalog for development mode
// and tests.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{inner: &memoryRepository{
		games:   make(map[string]Game),
		regions: make(map[string][]Region),
	}}
}

// MemoryRepository wraps the in-memory store and additionally exposes seed
// helpers tests use to populate it.
type MemoryRepository struct {
	inner *memoryRepository
}

// AddGame seeds one game.
func (r *MemoryRepository) AddGame(g Game) {
	r.inner.mu.Lock()
	defer r.inner.mu.Unlock()
	r.inner.games[g.ID] = g
}

// AddRegion seeds one region.
func (r *MemoryRepository) AddRegion(reg Region) {
	r.inner.mu.Lock()
	defer r.inner.mu.Unlock()
	r.inner.regions[reg.GameID] = append(r.inner.regions[reg.GameID], reg)
}

// AddPackage seeds one package.
func (r *MemoryRepository) AddPackage(p Package) {
	r.inner.mu.Lock()
	defer r.inner.mu.Unlock()
	r.inner.packages = append(r.inner.packages, p)
}

// Games lists every seeded game sorted by name.
func (r *MemoryRepository) Games(_ context.Context) ([]Game, error) {
	r.inner.mu.RLock()
	defer r.inner.mu.RUnlock()
	games := make([]Game, 0, len(r.inner.games))
	for _, g := range r.inner.games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].Name < games[j].Name })
	return games, nil
}

// Regions lists the regions of one game.
func (r *MemoryRepository) Regions(_ context.Context, gameID string) ([]Region, error) {
	r.inner.mu.RLock()
	defer r.inner.mu.RUnlock()
	return append([]Region(nil), r.inner.regions[gameID]...), nil
}

// Packages filters by game and region key.
func (r *MemoryRepository) Packages(_ context.Context, gameID, regionKey string) ([]Package, error) {
	r.inner.mu.RLock()
	defer r.inner.mu.RUnlock()
	var out []Package
	for _, p := range r.inner.packages {
		if p.GameID == gameID && p.RegionKey == regionKey {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}
