package sim

// VTick is the simulated time, counted in whole ticks since the simulation
// started.
type VTick uint64

// An Event is something going to happen in the future.
type Event interface {
	// Return the tick at which the event should happen
	Time() VTick

	// Returns the handler that should handle the event
	Handler() Handler
}

// EventBase provides the basic fields and getters for other events
type EventBase struct {
	ID      string
	time    VTick
	handler Handler
}

// NewEventBase creates a new EventBase
func NewEventBase(t VTick, handler Handler) *EventBase {
	e := new(EventBase)
	e.ID = GetIDGenerator().Generate()
	e.time = t
	e.handler = handler

	return e
}

// Time return the tick that the event is going to happen
func (e EventBase) Time() VTick {
	return e.time
}

// Handler returns the handler to handle the event.
func (e EventBase) Handler() Handler {
	return e.handler
}

// A Handler defines a domain for the events.
//
// One event is always constraint to one Handler, which means the event can
// only be scheduled by one handler and can only directly modify that handler.
type Handler interface {
	Handle(e Event) error
}
