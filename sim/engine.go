package sim

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() VTick
}

// EventScheduler can be used to schedule future events.
type EventScheduler interface {
	Schedule(e Event)
}

// An Engine is a unit that keeps the simulation run.
type Engine interface {
	Hookable
	TimeTeller
	EventScheduler

	// Run will process all the events until the queue drains.
	Run() error

	// RunUntil processes every event scheduled at or before the given tick
	// and leaves later events in the queue.
	RunUntil(t VTick) error

	// Pause will pause the simulation until continue is called.
	Pause()

	// Continue will continue the paused simulation
	Continue()
}
