package handler

import (
	"sync"

	"github.com/claritynotes/clarity-client/internal/domain/entities"
)

// ResultStore keeps the latest presented insight for the results view. Both
// the upload flow and the recording controller write to it; whichever wrote
// last wins, mirroring the last-write-wins delivery contract of result
// fetches. It doubles as the recording controller's result sink.
type ResultStore struct {
	mu      sync.Mutex
	result  *entities.InsightResult
	lastErr error
}

// NewResultStore creates an empty store.
func NewResultStore() *ResultStore {
	return &ResultStore{}
}

// PresentResult stores a fetched result and clears any previous error.
func (s *ResultStore) PresentResult(result *entities.InsightResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
	s.lastErr = nil
}

// PresentError records a failed fetch without discarding an earlier result.
func (s *ResultStore) PresentError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

// Snapshot returns the latest result and the last fetch error, if any.
func (s *ResultStore) Snapshot() (*entities.InsightResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.lastErr
}
