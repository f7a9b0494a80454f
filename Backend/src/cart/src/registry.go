package main

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

// ObserverFactory builds the observer attached to a session's cart when the
// cart is created.
type ObserverFactory func(sessionID string) Observer

// Registry owns one Store per visitor session. Least recently used carts are
// dropped once the registry is full.
type Registry struct {
	mu        sync.Mutex
	carts     *lru.Cache[string, *Store]
	factories []ObserverFactory
}

func NewRegistry(size int, factories ...ObserverFactory) (*Registry, error) {
	carts, err := lru.NewWithEvict(size, func(sessionID string, s *Store) {
		log.Info().
			Str("session", sessionID).
			Int32("items", s.TotalItems()).
			Msg("cart evicted")
	})
	if err != nil {
		return nil, err
	}
	return &Registry{carts: carts, factories: factories}, nil
}

// Get returns the cart of sessionID, creating an empty one on first use.
func (r *Registry) Get(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.carts.Get(sessionID); ok {
		return s
	}
	s := NewStore()
	for _, f := range r.factories {
		s.Subscribe(f(sessionID))
	}
	r.carts.Add(sessionID, s)
	return s
}

func (r *Registry) Len() int { return r.carts.Len() }
