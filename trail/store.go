package trail

import (
	"time"

	"github.com/lixenwraith/pointer-trail/constants"
)

// Store is the ordered sequence of live points
// Points are only appended at the end and removed by PruneOlderThan; order always equals creation order
// Not safe for concurrent use; Trail holds the lock across prune and projection
type Store struct {
	points []Point
}

// NewStore creates an empty store sized for one lifetime of samples
func NewStore() *Store {
	return &Store{
		points: make([]Point, 0, constants.TrailInitialCapacity),
	}
}

// Append inserts p at the end without deduplication
func (s *Store) Append(p Point) {
	s.points = append(s.points, p)
}

// PruneOlderThan removes every point with now - CreatedAt >= lifetime in one in-place pass
// Returns the live sequence and the number of removed points
// The returned slice aliases the store and is valid until the next mutation
func (s *Store) PruneOlderThan(now time.Time, lifetime time.Duration) ([]Point, int) {
	kept := s.points[:0]
	for _, p := range s.points {
		if p.Age(now) < lifetime {
			kept = append(kept, p)
		}
	}
	removed := len(s.points) - len(kept)

	// Zero the tail so the backing array does not hold stale points
	tail := s.points[len(kept):]
	for i := range tail {
		tail[i] = Point{}
	}

	s.points = kept
	return s.points, removed
}

// Len returns the number of live points
func (s *Store) Len() int {
	return len(s.points)
}

// Snapshot returns a copy of the live points
func (s *Store) Snapshot() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// Clear drops every point, keeping the allocation
func (s *Store) Clear() {
	clear(s.points)
	s.points = s.points[:0]
}
