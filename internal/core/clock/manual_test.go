package clock

import (
	"strings"
	"testing"
	"time"
)

func TestManualAdvanceFiresInDeadlineOrder(t *testing.T) {
	manual := NewManual(time.Unix(0, 0))

	var order []string
	manual.AfterFunc(3*time.Second, func() { order = append(order, "c") })
	manual.AfterFunc(time.Second, func() { order = append(order, "a") })
	manual.AfterFunc(2*time.Second, func() { order = append(order, "b") })

	manual.Advance(5 * time.Second)

	if got := strings.Join(order, ""); got != "abc" {
		t.Fatalf("fired order %q, want %q", got, "abc")
	}
	if got := manual.Now(); !got.Equal(time.Unix(5, 0)) {
		t.Fatalf("Now() = %v, want %v", got, time.Unix(5, 0))
	}
}

func TestManualTaskNotDueStaysPending(t *testing.T) {
	manual := NewManual(time.Unix(0, 0))

	fired := false
	manual.AfterFunc(5*time.Second, func() { fired = true })

	manual.Advance(4 * time.Second)
	if fired {
		t.Fatal("task fired before its deadline")
	}

	manual.Advance(time.Second)
	if !fired {
		t.Fatal("task did not fire at its deadline")
	}
}

func TestManualCancelStopsTask(t *testing.T) {
	manual := NewManual(time.Unix(0, 0))

	fired := false
	task := manual.AfterFunc(time.Second, func() { fired = true })

	if !task.Cancel() {
		t.Fatal("Cancel() = false for a pending task")
	}
	manual.Advance(2 * time.Second)

	if fired {
		t.Fatal("canceled task fired")
	}
	if task.Cancel() {
		t.Fatal("Cancel() = true for an already canceled task")
	}
}

func TestManualCallbackSeesOwnDeadline(t *testing.T) {
	manual := NewManual(time.Unix(0, 0))

	var seen time.Time
	manual.AfterFunc(time.Second, func() { seen = manual.Now() })
	manual.Advance(10 * time.Second)

	if !seen.Equal(time.Unix(1, 0)) {
		t.Fatalf("callback saw %v, want %v", seen, time.Unix(1, 0))
	}
}

func TestManualCallbackMayScheduleMore(t *testing.T) {
	manual := NewManual(time.Unix(0, 0))

	var fired []string
	manual.AfterFunc(time.Second, func() {
		fired = append(fired, "first")
		manual.AfterFunc(time.Second, func() { fired = append(fired, "second") })
	})

	manual.Advance(3 * time.Second)

	if got := strings.Join(fired, ","); got != "first,second" {
		t.Fatalf("fired %q, want %q", got, "first,second")
	}
}

func TestSystemAfterFuncFires(t *testing.T) {
	done := make(chan struct{})
	System.AfterFunc(10*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled function never ran")
	}
}

func TestSystemCancelPendingTask(t *testing.T) {
	task := System.AfterFunc(time.Hour, func() {})
	if !task.Cancel() {
		t.Fatal("Cancel() = false for a pending task")
	}
}
