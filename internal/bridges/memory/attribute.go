// Package memory provides in-memory collaborator implementations backing
// the simulator command and integration-style tests. Each store implements
// one client interface from the bridges package.
package memory

import (
	"context"
	"math"
	"sync"

	"github.com/chaosforge/damage-api/internal/bridges"
	"github.com/chaosforge/damage-api/internal/errors"
)

// Actor is one actor's attribute state.
type Actor struct {
	ID           string
	Stats        map[string]float64
	Resources    map[string]float64
	MaxResources map[string]float64
	ImmuneTypes  map[string]bool
}

// AttributeStore implements bridges.AttributeClient in memory.
type AttributeStore struct {
	mu     sync.RWMutex
	actors map[string]*Actor
}

// NewAttributeStore creates an empty attribute store.
func NewAttributeStore() *AttributeStore {
	return &AttributeStore{actors: make(map[string]*Actor)}
}

// AddActor registers an actor. Max resources default to current values.
func (s *AttributeStore) AddActor(actor *Actor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if actor.Stats == nil {
		actor.Stats = make(map[string]float64)
	}
	if actor.Resources == nil {
		actor.Resources = make(map[string]float64)
	}
	if actor.MaxResources == nil {
		actor.MaxResources = make(map[string]float64, len(actor.Resources))
	}
	for resource, value := range actor.Resources {
		if _, ok := actor.MaxResources[resource]; !ok {
			actor.MaxResources[resource] = value
		}
	}
	s.actors[actor.ID] = actor
}

// Resource returns an actor's current resource value.
func (s *AttributeStore) Resource(actorID, resource string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if actor, ok := s.actors[actorID]; ok {
		return actor.Resources[resource]
	}
	return 0
}

// ActorExists implements bridges.AttributeClient.
func (s *AttributeStore) ActorExists(_ context.Context, actorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.actors[actorID]
	return ok, nil
}

// GetDerivedStats implements bridges.AttributeClient.
func (s *AttributeStore) GetDerivedStats(_ context.Context, actorID string) (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	actor, ok := s.actors[actorID]
	if !ok {
		return nil, errors.NotFoundf("actor %s not found", actorID)
	}

	stats := make(map[string]float64, len(actor.Stats))
	for k, v := range actor.Stats {
		stats[k] = v
	}
	return stats, nil
}

// GetResources implements bridges.AttributeClient.
func (s *AttributeStore) GetResources(_ context.Context, actorID string) (map[string]bridges.ResourceValue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	actor, ok := s.actors[actorID]
	if !ok {
		return nil, errors.NotFoundf("actor %s not found", actorID)
	}

	resources := make(map[string]bridges.ResourceValue, len(actor.Resources))
	for name, current := range actor.Resources {
		resources[name] = bridges.ResourceValue{
			Current: current,
			Max:     actor.MaxResources[name],
		}
	}
	return resources, nil
}

// ApplyResourceDelta implements bridges.AttributeClient. Values clamp to
// [0, max]; the output reports the delta that actually landed.
func (s *AttributeStore) ApplyResourceDelta(_ context.Context, input *bridges.ResourceDeltaInput) (*bridges.ResourceDeltaOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, ok := s.actors[input.ActorID]
	if !ok {
		return nil, errors.ResourceApplicationf("actor %s not found", input.ActorID)
	}
	current, ok := actor.Resources[input.Resource]
	if !ok {
		return nil, errors.ResourceApplicationf("actor %s has no resource %q", input.ActorID, input.Resource)
	}

	next := current + input.Delta
	next = math.Max(0, next)
	if max, bounded := actor.MaxResources[input.Resource]; bounded {
		next = math.Min(max, next)
	}
	actor.Resources[input.Resource] = next

	return &bridges.ResourceDeltaOutput{
		Applied:   next - current,
		Remaining: next,
	}, nil
}

// CheckDamageImmunity implements bridges.AttributeClient.
func (s *AttributeStore) CheckDamageImmunity(_ context.Context, actorID, damageTypeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if actor, ok := s.actors[actorID]; ok {
		return actor.ImmuneTypes[damageTypeID], nil
	}
	return false, nil
}
