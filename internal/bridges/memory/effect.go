package memory

import (
	"context"
	"sync"

	"github.com/chaosforge/damage-api/internal/bridges"
)

// EffectStore implements bridges.EffectClient in memory.
type EffectStore struct {
	mu         sync.RWMutex
	effects    map[string][]bridges.EffectSummary
	immunities map[string]map[string]bool
}

// NewEffectStore creates an empty effect store.
func NewEffectStore() *EffectStore {
	return &EffectStore{
		effects:    make(map[string][]bridges.EffectSummary),
		immunities: make(map[string]map[string]bool),
	}
}

// AddEffect attaches an effect to an actor, preserving insertion order.
func (s *EffectStore) AddEffect(actorID string, effect bridges.EffectSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.effects[actorID] = append(s.effects[actorID], effect)
}

// SetImmunity marks an actor immune to a damage type.
func (s *EffectStore) SetImmunity(actorID, damageTypeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.immunities[actorID] == nil {
		s.immunities[actorID] = make(map[string]bool)
	}
	s.immunities[actorID][damageTypeID] = true
}

// GetActiveEffects implements bridges.EffectClient.
func (s *EffectStore) GetActiveEffects(_ context.Context, actorID string) ([]bridges.EffectSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]bridges.EffectSummary, len(s.effects[actorID]))
	copy(out, s.effects[actorID])
	return out, nil
}

// CheckDamageImmunity implements bridges.EffectClient.
func (s *EffectStore) CheckDamageImmunity(_ context.Context, actorID, damageTypeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.immunities[actorID][damageTypeID], nil
}
