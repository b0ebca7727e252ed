package model

// CueKind identifies an audio feedback event.
type CueKind string

const (
	// CueStart announces a phase beginning automatically after the settle
	// delay (and manual starts, when the countdown is configured for it).
	CueStart CueKind = "start"
	// CueHalfway marks the midpoint of a phase.
	CueHalfway CueKind = "halfway"
	// CueEnd marks the natural expiry of a work phase.
	CueEnd CueKind = "end"
)

// CueSettings is the sound policy the countdown machine reads fresh on every
// tick, so settings edits apply to a phase already in flight.
type CueSettings struct {
	Enabled bool
	Muted   bool
	// Stealth silences every cue without touching the saved sound settings.
	Stealth bool
	// Volume is the playback level, 0.0 to 1.0.
	Volume float64

	OnStart   bool
	OnHalfway bool
	OnEnd     bool
}

// Silent reports whether no cue may play at all under this policy.
func (settings CueSettings) Silent() bool {
	return !settings.Enabled || settings.Muted || settings.Stealth || settings.Volume <= 0
}

// Allows reports whether a cue of the given kind may play.
func (settings CueSettings) Allows(kind CueKind) bool {
	if settings.Silent() {
		return false
	}
	switch kind {
	case CueStart:
		return settings.OnStart
	case CueHalfway:
		return settings.OnHalfway
	case CueEnd:
		return settings.OnEnd
	}
	return false
}
