package memory

import (
	"context"
	"sync"

	"github.com/chaosforge/damage-api/internal/bridges"
	"github.com/chaosforge/damage-api/internal/errors"
)

// ActionStore implements bridges.ActionClient in memory.
type ActionStore struct {
	mu         sync.RWMutex
	actions    map[string]bridges.ActionSummary
	immunities map[string]map[string]bool
}

// NewActionStore creates an empty action store.
func NewActionStore() *ActionStore {
	return &ActionStore{
		actions:    make(map[string]bridges.ActionSummary),
		immunities: make(map[string]map[string]bool),
	}
}

// AddAction registers an action definition.
func (s *ActionStore) AddAction(action bridges.ActionSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions[action.ID] = action
}

// SetImmunity marks an actor immune to an action.
func (s *ActionStore) SetImmunity(actorID, actionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.immunities[actorID] == nil {
		s.immunities[actorID] = make(map[string]bool)
	}
	s.immunities[actorID][actionID] = true
}

// GetActionDefinition implements bridges.ActionClient.
func (s *ActionStore) GetActionDefinition(_ context.Context, actionID string) (*bridges.ActionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if action, ok := s.actions[actionID]; ok {
		out := action
		return &out, nil
	}
	return nil, errors.NotFoundf("action %s not found", actionID)
}

// CheckImmunity implements bridges.ActionClient.
func (s *ActionStore) CheckImmunity(_ context.Context, actorID, actionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.immunities[actorID][actionID], nil
}
