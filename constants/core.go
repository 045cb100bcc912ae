package constants

import "time"

// Trail Timing
const (
	// TrailLifetime is how long a sample point stays on screen before it is pruned
	TrailLifetime = 500 * time.Millisecond

	// SampleInterval is the minimum spacing between accepted pointer samples
	SampleInterval = 20 * time.Millisecond

	// FrameUpdateInterval is the aging tick interval when no refresh signal is wired (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond
)

// Store sizing
const (
	// TrailInitialCapacity covers one lifetime of samples at the sampling rate
	// 500ms / 20ms = 25, rounded up to leave room for a tick of slack
	TrailInitialCapacity = 32

	// PointerSubscriberCapacity is the initial subscriber slice size for a pointer feed
	PointerSubscriberCapacity = 2
)
