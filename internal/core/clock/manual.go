package clock

import (
	"sync"
	"time"
)

// Manual is a Clock whose time only moves when Advance is called. Scheduled
// functions fire synchronously during Advance, in deadline order.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	tasks []*manualTask
}

// NewManual returns a Manual clock starting at the given time.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (manual *Manual) Now() time.Time {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return manual.now
}

func (manual *Manual) AfterFunc(d time.Duration, fn func()) Task {
	manual.mu.Lock()
	defer manual.mu.Unlock()

	task := &manualTask{
		clock:    manual,
		deadline: manual.now.Add(d),
		fn:       fn,
	}
	manual.tasks = append(manual.tasks, task)
	return task
}

// Advance moves the clock forward by d and fires every scheduled function
// whose deadline falls inside the window. Functions run on the calling
// goroutine in deadline order; each one observes Now at its own deadline,
// and may schedule or cancel further tasks.
func (manual *Manual) Advance(d time.Duration) {
	manual.mu.Lock()
	target := manual.now.Add(d)

	for {
		task := manual.nextDueLocked(target)
		if task == nil {
			break
		}
		manual.now = task.deadline
		manual.removeLocked(task)
		fn := task.fn
		manual.mu.Unlock()
		fn()
		manual.mu.Lock()
	}

	manual.now = target
	manual.mu.Unlock()
}

func (manual *Manual) nextDueLocked(target time.Time) *manualTask {
	var due *manualTask
	for _, task := range manual.tasks {
		if task.deadline.After(target) {
			continue
		}
		if due == nil || task.deadline.Before(due.deadline) {
			due = task
		}
	}
	return due
}

func (manual *Manual) removeLocked(task *manualTask) bool {
	for i, candidate := range manual.tasks {
		if candidate == task {
			manual.tasks = append(manual.tasks[:i], manual.tasks[i+1:]...)
			return true
		}
	}
	return false
}

type manualTask struct {
	clock    *Manual
	deadline time.Time
	fn       func()
}

func (task *manualTask) Cancel() bool {
	task.clock.mu.Lock()
	defer task.clock.mu.Unlock()
	return task.clock.removeLocked(task)
}
