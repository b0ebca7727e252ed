package workout

import "time"

// EventType defines the type of Sequencer event.
type EventType string

const (
	EventStepChange      EventType = "step_change"
	EventStepComplete    EventType = "step_complete"
	EventSessionComplete EventType = "session_complete"
)

// Event represents a Sequencer update for observers.
type Event struct {
	Type      EventType
	StepIndex int
	Step      Step
	At        time.Time
}
