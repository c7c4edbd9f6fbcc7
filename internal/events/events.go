// Package events defines the outcome events the damage pipeline publishes
// and the dispatcher that fans them out to registered subscribers.
package events

import (
	"time"
)

// Type identifies an outcome event.
type Type string

// Outcome event types.
const (
	TypeDamageApplied   Type = "damage.applied"
	TypeDamageBlocked   Type = "damage.blocked"
	TypeDamageAbsorbed  Type = "damage.absorbed"
	TypeDamageReflected Type = "damage.reflected"
	TypeDamageImmunity  Type = "damage.immunity"
)

// Event is one published outcome. Delivery is at-least-once within a single
// process lifetime; there is no durable delivery guarantee.
type Event struct {
	ID           string
	Type         Type
	ActorID      string
	DamageTypeID string
	Amount       float64

	// AttackerID is set on reflection events: the reflected amount should
	// be scheduled as a new request against this actor. The pipeline never
	// recurses internally.
	AttackerID string

	Timestamp time.Time
}
