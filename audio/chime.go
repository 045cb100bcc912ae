package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/pointer-trail/constants"
)

// Player plays streamers; satisfied by the speaker package through SpeakerPlayer
type Player interface {
	Play(s ...beep.Streamer)
}

// SpeakerPlayer plays through the process-wide beep speaker
type SpeakerPlayer struct{}

// Play implements Player
func (SpeakerPlayer) Play(s ...beep.Streamer) {
	speaker.Play(s...)
}

// Chime plays a short tone when a new trail stroke begins
type Chime struct {
	rate   beep.SampleRate
	player Player
}

// NewChime creates a chime that plays through player
func NewChime(player Player) *Chime {
	return &Chime{
		rate:   beep.SampleRate(constants.ChimeSampleRate),
		player: player,
	}
}

// OpenSpeaker initializes the speaker and returns a chime bound to it with its close function
func OpenSpeaker() (*Chime, func(), error) {
	rate := beep.SampleRate(constants.ChimeSampleRate)
	if err := speaker.Init(rate, rate.N(constants.ChimeBufferDuration)); err != nil {
		return nil, nil, fmt.Errorf("failed to init speaker: %w", err)
	}
	return NewChime(SpeakerPlayer{}), speaker.Close, nil
}

// Play starts the tone without blocking
func (c *Chime) Play() {
	c.player.Play(c.Tone())
}

// Tone builds the enveloped sine streamer played by Play
func (c *Chime) Tone() beep.Streamer {
	osc := newSine(constants.ChimeFrequency, constants.ChimeDuration, c.rate)
	shaped := newEnvelope(osc, constants.ChimeDuration, constants.ChimeAttack, constants.ChimeRelease, c.rate)
	return newVolume(shaped, constants.ChimeVolume)
}

// sine generates a fixed-length sine wave
type sine struct {
	freq     float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

func newSine(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sine{
		freq:     freq,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (o *sine) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		// Keep phase in [0, 1)
		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *sine) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.totalSamples - e.releaseSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume applies a linear gain; math.Log2(0) is -Inf so zero maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
