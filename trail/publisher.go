package trail

import "sync"

// MultiPublisher forwards each frame to every publisher in order
type MultiPublisher []Publisher

// Publish implements Publisher
func (m MultiPublisher) Publish(frame Frame) {
	for _, p := range m {
		p.Publish(frame)
	}
}

// Recorder keeps the most recent frame for on-demand consumers such as snapshots
type Recorder struct {
	mu   sync.Mutex
	last Frame
}

// Publish implements Publisher
func (r *Recorder) Publish(frame Frame) {
	r.mu.Lock()
	r.last = frame
	r.mu.Unlock()
}

// Last returns the most recently published frame
// Frames are never mutated after publishing, so the glyph slice is shared
func (r *Recorder) Last() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
