package countdown

import "time"

// Phase represents the current Timer mode.
type Phase string

const (
	PhaseStopped Phase = "stopped"
	PhaseRunning Phase = "running"
	PhaseResting Phase = "resting"
)

// EventType defines the type of Timer event.
type EventType string

const (
	EventPhaseChange EventType = "phase_change"
	EventCycle       EventType = "cycle"
	EventProgress    EventType = "progress"
)

// Event represents a Timer update for observers.
type Event struct {
	Type      EventType
	Phase     Phase
	Remaining time.Duration
	Cycle     int
	Progress  float64
	At        time.Time
}
