package audio

import (
	"testing"

	"fitclock/internal/core/model"
)

// Play must be safe whatever the audio hardware situation: headless boxes
// fail speaker init and the player degrades to a silent no-op.
func TestPlayNeverFails(t *testing.T) {
	player := NewPlayer()

	player.Play(model.CueStart, 0.5)
	player.Play(model.CueHalfway, 1)
	player.Play(model.CueEnd, 2) // clamped
	player.Play(model.CueKind("bogus"), 0.5)
	player.Play(model.CueEnd, 0)  // silent
	player.Play(model.CueEnd, -1) // silent
}
