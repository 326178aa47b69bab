package tmdb

import (
	"sync"
	"time"
)

// movieCache keeps GetMovie responses in memory for the length of a
// matching pass and a little beyond. Movie records barely change, and
// cross-validation re-fetches the same IDs repeatedly.
type movieCache struct {
	mu     sync.Mutex
	ttl    time.Duration
	movies map[int64]*Movie
	expiry map[int64]time.Time
}

func newMovieCache(ttl time.Duration) *movieCache {
	return &movieCache{
		ttl:    ttl,
		movies: make(map[int64]*Movie),
		expiry: make(map[int64]time.Time),
	}
}

func (c *movieCache) get(id int64) (*Movie, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.movies[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(c.expiry[id]) {
		delete(c.movies, id)
		delete(c.expiry, id)
		return nil, false
	}
	return m, true
}

func (c *movieCache) set(id int64, m *Movie) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.movies[id] = m
	c.expiry[id] = time.Now().Add(c.ttl)
}
