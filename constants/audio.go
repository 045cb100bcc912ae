package constants

import "time"

// Stroke chime
const (
	// ChimeSampleRate is the speaker sample rate
	ChimeSampleRate = 44100

	// ChimeFrequency is the tone played when a new stroke starts
	ChimeFrequency = 880.0

	ChimeDuration = 60 * time.Millisecond
	ChimeAttack   = 5 * time.Millisecond
	ChimeRelease  = 40 * time.Millisecond

	// ChimeVolume is the linear gain applied to the tone
	ChimeVolume = 0.25

	// ChimeBufferDuration is the speaker buffer size
	ChimeBufferDuration = 100 * time.Millisecond
)
