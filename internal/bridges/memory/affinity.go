package memory

import (
	"context"
	"sync"

	"github.com/chaosforge/damage-api/internal/bridges"
)

// AffinityStore implements bridges.AffinityClient in memory.
type AffinityStore struct {
	mu         sync.RWMutex
	mastery    map[string]map[string]bridges.MasteryData
	immunities map[string]map[string]bool
}

// NewAffinityStore creates an empty affinity store.
func NewAffinityStore() *AffinityStore {
	return &AffinityStore{
		mastery:    make(map[string]map[string]bridges.MasteryData),
		immunities: make(map[string]map[string]bool),
	}
}

// SetMastery records an actor's proficiency with an element.
func (s *AffinityStore) SetMastery(actorID, elementID string, data bridges.MasteryData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mastery[actorID] == nil {
		s.mastery[actorID] = make(map[string]bridges.MasteryData)
	}
	s.mastery[actorID][elementID] = data
}

// SetImmunity marks an actor immune to an element.
func (s *AffinityStore) SetImmunity(actorID, elementID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.immunities[actorID] == nil {
		s.immunities[actorID] = make(map[string]bool)
	}
	s.immunities[actorID][elementID] = true
}

// GetMastery implements bridges.AffinityClient. Actors without recorded
// mastery are untrained, not an error.
func (s *AffinityStore) GetMastery(_ context.Context, actorID, elementID string) (*bridges.MasteryData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if data, ok := s.mastery[actorID][elementID]; ok {
		out := data
		return &out, nil
	}
	return &bridges.MasteryData{}, nil
}

// CheckImmunity implements bridges.AffinityClient.
func (s *AffinityStore) CheckImmunity(_ context.Context, actorID, elementID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.immunities[actorID][elementID], nil
}
