package services

import (
	"sync"
	"time"

	"recipeshare/internal/metrics"
	"recipeshare/internal/utils"
)

// RecipeCache holds populated recipe views by id. Any write that changes
// what a view shows must call Invalidate. A nil *RecipeCache is a no-op.
//
// Each id carries a generation that Invalidate bumps. A loader reads the
// generation before it reads the store and passes it to Set, which drops
// the view if an invalidation happened in between.
type RecipeCache struct {
	views *utils.Cache[uint, RecipeView]

	mu   sync.Mutex
	gens map[uint]uint64
}

func NewRecipeCache(size int, ttl time.Duration) (*RecipeCache, error) {
	views, err := utils.NewCache[uint, RecipeView](size, ttl)
	if err != nil {
		return nil, err
	}
	return &RecipeCache{views: views, gens: make(map[uint]uint64)}, nil
}

func (c *RecipeCache) Get(id uint) (RecipeView, bool) {
	if c == nil {
		return RecipeView{}, false
	}
	view, ok := c.views.Get(id)
	metrics.RecordCacheLookup(ok)
	return view, ok
}

func (c *RecipeCache) Generation(id uint) uint64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[id]
}

// Set stores view unless its id was invalidated after gen was read.
func (c *RecipeCache) Set(view RecipeView, gen uint64) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[view.ID] != gen {
		return false
	}
	c.views.Set(view.ID, view)
	return true
}

func (c *RecipeCache) Invalidate(id uint) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[id]++
	c.views.Delete(id)
}
