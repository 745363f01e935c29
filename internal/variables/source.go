package variables

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Source is the read-only data source the exporter pulls variables from.
// Lookups of unknown ids return (nil, nil); an error means the source itself failed.
type Source interface {
	VariableByID(ctx context.Context, id string) (*Variable, error)
	CollectionByID(ctx context.Context, id string) (*Collection, error)
	VariablesInCollection(ctx context.Context, collectionID string) ([]*Variable, error)
}

// Store is an in-memory Source backed by a Snapshot
type Store struct {
	mu          sync.RWMutex
	variables   map[string]*Variable
	collections map[string]*Collection
	order       []string
}

// NewStore indexes the snapshot. Later entries with a duplicate id replace earlier ones.
func NewStore(snapshot *Snapshot) *Store {
	s := &Store{
		variables:   make(map[string]*Variable),
		collections: make(map[string]*Collection),
	}
	if snapshot == nil {
		return s
	}
	for _, c := range snapshot.Collections {
		s.AddCollection(c)
	}
	for _, v := range snapshot.Variables {
		s.AddVariable(v)
	}
	return s
}

// AddCollection adds or replaces a collection
func (s *Store) AddCollection(c *Collection) {
	if c == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[c.ID] = c
}

// AddVariable adds or replaces a variable, keeping its first insertion position
func (s *Store) AddVariable(v *Variable) {
	if v == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.variables[v.ID]; !exists {
		s.order = append(s.order, v.ID)
	}
	s.variables[v.ID] = v
}

// Count returns the number of variables in the store
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.variables)
}

// VariableByID returns the variable with id, or nil when there is none
func (s *Store) VariableByID(ctx context.Context, id string) (*Variable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.variables[id], nil
}

// CollectionByID returns the collection with id, or nil when there is none
func (s *Store) CollectionByID(ctx context.Context, id string) (*Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collections[id], nil
}

// VariablesInCollection returns the collection's variables in insertion order
func (s *Store) VariablesInCollection(ctx context.Context, collectionID string) ([]*Variable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*Variable
	for _, id := range s.order {
		if v := s.variables[id]; v.CollectionID == collectionID {
			result = append(result, v)
		}
	}
	return result, nil
}

// DefaultCacheSize bounds each of the CachingSource caches
const DefaultCacheSize = 1024

// CachingSource memoizes variable and collection lookups of a slower Source.
// Misses are not cached, so a variable added to the underlying source later is found.
type CachingSource struct {
	next        Source
	variables   *lru.Cache[string, *Variable]
	collections *lru.Cache[string, *Collection]
}

// NewCachingSource wraps next with LRU caches of the given size
func NewCachingSource(next Source, size int) (*CachingSource, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	variables, err := lru.New[string, *Variable](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create variable cache: %w", err)
	}
	collections, err := lru.New[string, *Collection](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection cache: %w", err)
	}
	return &CachingSource{next: next, variables: variables, collections: collections}, nil
}

// VariableByID serves id from the cache, falling through to the wrapped source
func (c *CachingSource) VariableByID(ctx context.Context, id string) (*Variable, error) {
	if v, ok := c.variables.Get(id); ok {
		return v, nil
	}
	v, err := c.next.VariableByID(ctx, id)
	if err != nil || v == nil {
		return v, err
	}
	c.variables.Add(id, v)
	return v, nil
}

// CollectionByID serves id from the cache, falling through to the wrapped source
func (c *CachingSource) CollectionByID(ctx context.Context, id string) (*Collection, error) {
	if col, ok := c.collections.Get(id); ok {
		return col, nil
	}
	col, err := c.next.CollectionByID(ctx, id)
	if err != nil || col == nil {
		return col, err
	}
	c.collections.Add(id, col)
	return col, nil
}

// VariablesInCollection passes through and warms the variable cache with the result
func (c *CachingSource) VariablesInCollection(ctx context.Context, collectionID string) ([]*Variable, error) {
	vars, err := c.next.VariablesInCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	for _, v := range vars {
		c.variables.Add(v.ID, v)
	}
	return vars, nil
}

// Purge drops all cached entries
func (c *CachingSource) Purge() {
	c.variables.Purge()
	c.collections.Purge()
}
