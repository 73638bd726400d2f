package service

import (
	"errors"
	"sync"
)

var ErrInFlight = errors.New("an identical request is already in progress")

// inFlight refuses a second call for a key while the first is running. The
// key is released whatever the outcome, so a retry after a failure starts
// clean.
type inFlight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInFlight() *inFlight {
	return &inFlight{keys: map[string]struct{}{}}
}

func (g *inFlight) acquire(key string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.keys[key]; busy {
		return nil, ErrInFlight
	}
	g.keys[key] = struct{}{}
	return func() {
		g.mu.Lock()
		delete(g.keys, key)
		g.mu.Unlock()
	}, nil
}
