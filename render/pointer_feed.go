package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pointer-trail/constants"
)

type pointerSub struct {
	id uint64
	fn func(x, y float64)
}

// PointerFeed turns tcell mouse events into pointer positions for trail subscribers
// Only movement is reported: wheel events and repeats at the same cell are skipped
type PointerFeed struct {
	mu     sync.Mutex
	subs   []pointerSub
	nextID uint64

	lastX, lastY int
	seen         bool
}

// NewPointerFeed creates a feed with no subscribers
func NewPointerFeed() *PointerFeed {
	return &PointerFeed{
		subs: make([]pointerSub, 0, constants.PointerSubscriberCapacity),
	}
}

// Subscribe implements trail.Source
func (f *PointerFeed) Subscribe(fn func(x, y float64)) (cancel func()) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs = append(f.subs, pointerSub{id: id, fn: fn})
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			for i, s := range f.subs {
				if s.id == id {
					f.subs = append(f.subs[:i], f.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Subscribers returns the number of active subscriptions
func (f *PointerFeed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// HandleEvent dispatches a mouse event and reports whether ev was a mouse event
func (f *PointerFeed) HandleEvent(ev tcell.Event) bool {
	mev, ok := ev.(*tcell.EventMouse)
	if !ok {
		return false
	}
	if mev.Buttons()&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) != 0 {
		return true
	}

	x, y := mev.Position()

	f.mu.Lock()
	if f.seen && x == f.lastX && y == f.lastY {
		f.mu.Unlock()
		return true
	}
	f.seen = true
	f.lastX, f.lastY = x, y

	// Call outside the lock so a subscriber may cancel itself
	subs := make([]pointerSub, len(f.subs))
	copy(subs, f.subs)
	f.mu.Unlock()

	for _, s := range subs {
		s.fn(float64(x), float64(y))
	}
	return true
}
