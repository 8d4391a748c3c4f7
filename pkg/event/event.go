// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Lifecycle event types
const (
	BodySpawned    Type = "body_spawned"
	BodyDied       Type = "body_died"
	BodyRespawned  Type = "body_respawned"
	AsteroidSplit  Type = "asteroid_split"
	BodiesCollided Type = "bodies_collided"
	WaveStarted    Type = "wave_started"
	ScoreChanged   Type = "score_changed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Type:   eventType,
		Cancel: func() { b.Unsubscribe(eventType, id) },
	}
}

// Unsubscribe removes the handler registered under id
func (b *Bus) Unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// BodyEvent reports a change in a single body's lifecycle
type BodyEvent struct {
	BaseEvent
	BodyID uint64
	Kind   string
}

// NewBodyEvent creates a new body event
func NewBodyEvent(eventType Type, source interface{}, bodyID uint64, kind string) *BodyEvent {
	return &BodyEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		BodyID: bodyID,
		Kind:   kind,
	}
}

// SplitEvent reports the children of a destroyed asteroid
type SplitEvent struct {
	BaseEvent
	ParentID uint64
	ChildIDs []uint64
}

// NewSplitEvent creates a new split event
func NewSplitEvent(source interface{}, parentID uint64, childIDs []uint64) *SplitEvent {
	return &SplitEvent{
		BaseEvent: BaseEvent{
			EventType: AsteroidSplit,
			Source:    source,
		},
		ParentID: parentID,
		ChildIDs: childIDs,
	}
}

// CollisionEvent contains information about body collisions
type CollisionEvent struct {
	BaseEvent
	BodyA uint64
	BodyB uint64
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(source interface{}, bodyA, bodyB uint64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: BodiesCollided,
			Source:    source,
		},
		BodyA: bodyA,
		BodyB: bodyB,
	}
}

// WaveEvent reports a new wave of asteroids
type WaveEvent struct {
	BaseEvent
	Wave      int
	Asteroids int
}

// NewWaveEvent creates a new wave event
func NewWaveEvent(source interface{}, wave, asteroids int) *WaveEvent {
	return &WaveEvent{
		BaseEvent: BaseEvent{
			EventType: WaveStarted,
			Source:    source,
		},
		Wave:      wave,
		Asteroids: asteroids,
	}
}

// ScoreEvent reports a score change
type ScoreEvent struct {
	BaseEvent
	Delta int
	Total int
}

// NewScoreEvent creates a new score event
func NewScoreEvent(source interface{}, delta, total int) *ScoreEvent {
	return &ScoreEvent{
		BaseEvent: BaseEvent{
			EventType: ScoreChanged,
			Source:    source,
		},
		Delta: delta,
		Total: total,
	}
}
