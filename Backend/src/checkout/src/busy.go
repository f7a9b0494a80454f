package main

import "sync"

// inFlight tracks sessions with a checkout being processed.
type inFlight struct {
	mu       sync.Mutex
	sessions map[string]struct{}
}

func newInFlight() *inFlight {
	return &inFlight{sessions: make(map[string]struct{})}
}

// acquire reports false when sessionID already has a checkout in flight.
func (f *inFlight) acquire(sessionID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.sessions[sessionID]; busy {
		return false
	}
	f.sessions[sessionID] = struct{}{}
	return true
}

func (f *inFlight) release(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sessionID)
}
