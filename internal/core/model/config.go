package model

import "time"

// MinInterval is the shortest configurable interval length. FitClock counts
// in whole seconds; a sub-second work interval is treated as a configuration
// mistake and clamped here rather than rejected at runtime.
const MinInterval = time.Second

// CountdownConfig describes one work/rest cycle for the countdown machine.
type CountdownConfig struct {
	// Target is the length of the active (work) interval.
	Target time.Duration
	// Rest is the length of the recovery interval. Zero disables the rest
	// phase entirely: the countdown loops straight back into work.
	Rest time.Duration
}

// Normalized returns a copy with invalid durations clamped. Target must be
// at least MinInterval; Rest may be zero but never negative.
func (config CountdownConfig) Normalized() CountdownConfig {
	if config.Target < MinInterval {
		config.Target = MinInterval
	}
	if config.Rest < 0 {
		config.Rest = 0
	}
	return config
}
