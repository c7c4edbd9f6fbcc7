package events

import (
	"context"
	"log/slog"
	"sync"
)

//go:generate mockgen -destination=mock/mock_subscriber.go -package=eventsmock github.com/chaosforge/damage-api/internal/events Subscriber

// Subscriber receives published events. Handle errors are logged and do not
// stop delivery to other subscribers.
type Subscriber interface {
	Handle(ctx context.Context, evt Event) error
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(ctx context.Context, evt Event) error

// Handle calls the function.
func (f SubscriberFunc) Handle(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// Dispatcher owns an explicit subscriber list and iterates it synchronously
// per event. There is no hidden global bus.
type Dispatcher struct {
	mu   sync.RWMutex
	subs []Subscriber
}

// NewDispatcher creates a dispatcher with no subscribers.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers a subscriber for all subsequent events.
func (d *Dispatcher) Subscribe(sub Subscriber) {
	if sub == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs = append(d.subs, sub)
}

// Publish delivers an event to every subscriber in registration order.
func (d *Dispatcher) Publish(ctx context.Context, evt Event) {
	d.mu.RLock()
	subs := make([]Subscriber, len(d.subs))
	copy(subs, d.subs)
	d.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.Handle(ctx, evt); err != nil {
			slog.Warn("event subscriber failed",
				"event_id", evt.ID,
				"event_type", evt.Type,
				"actor_id", evt.ActorID,
				"error", err,
			)
		}
	}
}
