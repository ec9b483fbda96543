package evaluator

import (
	"context"
	"sync"

	"github.com/DaiCC-Aurora/SigmaGo/game"
	"github.com/DaiCC-Aurora/SigmaGo/searcher"
	"github.com/rs/zerolog/log"
)

// DefaultCacheCapacity bounds a Cached evaluator built with a non-positive
// capacity.
const DefaultCacheCapacity = 1 << 16

// cacheKey identifies everything an evaluator can observe on a board: the
// grid and color to move through the hash, plus the placement count and the
// last move, which feed IsTerminal and the feature planes.
type cacheKey struct {
	hash   uint64
	stones int
	last   game.Action
}

func keyOf(board *game.Board) cacheKey {
	return cacheKey{hash: board.Hash(), stones: board.StoneCount(), last: board.LastMove()}
}

// Cached memoises another evaluator by board. The oldest entry is
// evicted once capacity is reached. Returned priors are shared between hits
// and must not be modified.
type Cached struct {
	inner    searcher.Evaluator
	capacity int

	mu      sync.Mutex
	entries map[cacheKey]searcher.Evaluation
	order   []cacheKey // insertion order, oldest first
	hits    int
	misses  int
}

func NewCached(inner searcher.Evaluator, capacity int) *Cached {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cached{
		inner:    inner,
		capacity: capacity,
		entries:  make(map[cacheKey]searcher.Evaluation, capacity),
	}
}

func (c *Cached) Evaluate(ctx context.Context, board *game.Board) (searcher.Evaluation, error) {
	key := keyOf(board)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.hits++
		c.mu.Unlock()
		return e, nil
	}
	c.misses++
	c.mu.Unlock()

	e, err := c.inner.Evaluate(ctx, board)
	if err != nil {
		return searcher.Evaluation{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return e, nil
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
		log.Debug().Uint64("hash", oldest.hash).Int("stones", oldest.stones).Msg("evicted cached evaluation")
	}
	c.entries[key] = e
	c.order = append(c.order, key)
	return e, nil
}

// Stats reports cache hits, misses and the number of stored entries.
func (c *Cached) Stats() (hits, misses, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.entries)
}
