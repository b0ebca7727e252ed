package workout

import (
	"fmt"
	"time"
)

// StepType distinguishes exercise segments from recovery segments.
type StepType string

const (
	StepExercise StepType = "exercise"
	StepRest     StepType = "rest"
)

// Step is one segment of a workout plan, either timed or repetition-based.
type Step struct {
	ID       string
	Name     string
	Type     StepType
	RepBased bool
	Duration time.Duration // ignored when RepBased
	Reps     int           // only meaningful when RepBased
}

// Plan is an ordered list of steps making up one workout.
type Plan struct {
	Name  string
	Steps []Step
}

// DefaultPlans returns the built-in workout plans.
func DefaultPlans() []Plan {
	tabata := Plan{Name: "Tabata"}
	for round := 1; round <= 8; round++ {
		tabata.Steps = append(tabata.Steps,
			Step{
				ID:       fmt.Sprintf("tabata-work-%d", round),
				Name:     fmt.Sprintf("Work %d/8", round),
				Type:     StepExercise,
				Duration: 20 * time.Second,
			},
			Step{
				ID:       fmt.Sprintf("tabata-rest-%d", round),
				Name:     fmt.Sprintf("Rest %d/8", round),
				Type:     StepRest,
				Duration: 10 * time.Second,
			},
		)
	}

	return []Plan{
		{
			Name: "Quick HIIT",
			Steps: []Step{
				{ID: "hiit-warmup", Name: "Warm-up", Type: StepExercise, Duration: time.Minute},
				{ID: "hiit-knees", Name: "High knees", Type: StepExercise, Duration: 30 * time.Second},
				{ID: "hiit-rest-1", Name: "Rest", Type: StepRest, Duration: 15 * time.Second},
				{ID: "hiit-burpees", Name: "Burpees", Type: StepExercise, Duration: 30 * time.Second},
				{ID: "hiit-rest-2", Name: "Rest", Type: StepRest, Duration: 15 * time.Second},
				{ID: "hiit-squats", Name: "Jump squats", Type: StepExercise, Duration: 30 * time.Second},
				{ID: "hiit-cooldown", Name: "Cool-down", Type: StepExercise, Duration: time.Minute},
			},
		},
		tabata,
		{
			Name: "Strength Basics",
			Steps: []Step{
				{ID: "str-pushups", Name: "Push-ups", Type: StepExercise, RepBased: true, Reps: 12},
				{ID: "str-rest-1", Name: "Rest", Type: StepRest, Duration: 30 * time.Second},
				{ID: "str-squats", Name: "Squats", Type: StepExercise, RepBased: true, Reps: 15},
				{ID: "str-rest-2", Name: "Rest", Type: StepRest, Duration: 30 * time.Second},
				{ID: "str-plank", Name: "Plank", Type: StepExercise, Duration: 45 * time.Second},
			},
		},
	}
}
