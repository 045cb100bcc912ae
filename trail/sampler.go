package trail

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Sampler throttles raw pointer events to at most one accepted sample per interval
// The gap is measured from the last accepted sample, not the last raw event
// Not safe for concurrent use; Trail serializes access
type Sampler struct {
	clock    clockwork.Clock
	interval time.Duration

	lastAccepted time.Time
	armed        bool // false until the first acceptance after construction or Reset

	nextID uint64
}

// NewSampler creates a sampler; the first event after creation is always accepted
func NewSampler(clock clockwork.Clock, interval time.Duration) *Sampler {
	return &Sampler{
		clock:    clock,
		interval: interval,
	}
}

// Sample offers a raw pointer position, returning the new point and true when accepted
func (s *Sampler) Sample(x, y float64) (Point, bool) {
	now := s.clock.Now()
	if s.armed && now.Sub(s.lastAccepted) < s.interval {
		return Point{}, false
	}

	s.armed = true
	s.lastAccepted = now

	p := Point{
		ID:        s.nextID,
		X:         x,
		Y:         y,
		CreatedAt: now,
	}
	s.nextID++
	return p, true
}

// Reset makes the next event accepted unconditionally; IDs keep counting up
func (s *Sampler) Reset() {
	s.armed = false
	s.lastAccepted = time.Time{}
}

// NextID returns the ID the next accepted sample will carry
func (s *Sampler) NextID() uint64 {
	return s.nextID
}
