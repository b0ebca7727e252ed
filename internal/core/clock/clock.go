// Package clock abstracts time operations so timing code can be driven
// deterministically in tests.
package clock

import "time"

// Clock provides the current time and deferred execution.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Task
}

// Task is a handle to a scheduled function. Cancel reports whether the
// function was stopped before it ran.
type Task interface {
	Cancel() bool
}

// System is the Clock backed by the real time package.
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) Task {
	return systemTask{timer: time.AfterFunc(d, fn)}
}

type systemTask struct {
	timer *time.Timer
}

func (task systemTask) Cancel() bool { return task.timer.Stop() }
