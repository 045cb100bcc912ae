package trail

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func pointAt(id uint64, base time.Time, offset time.Duration) Point {
	return Point{ID: id, X: float64(id), Y: float64(id) * 2, CreatedAt: base.Add(offset)}
}

func TestStore_AppendKeepsOrder(t *testing.T) {
	base := time.Unix(1000, 0)
	s := NewStore()
	for i := uint64(0); i < 50; i++ {
		s.Append(pointAt(i, base, time.Duration(i)*time.Millisecond))
	}
	require.Equal(t, 50, s.Len())

	snap := s.Snapshot()
	for i, p := range snap {
		require.Equal(t, uint64(i), p.ID)
	}
}

func TestStore_AppendDoesNotDeduplicate(t *testing.T) {
	base := time.Unix(1000, 0)
	s := NewStore()
	p := pointAt(3, base, 0)
	s.Append(p)
	s.Append(p)
	require.Equal(t, 2, s.Len())
}

func TestStore_PruneBoundary(t *testing.T) {
	const lifetime = 500 * time.Millisecond
	base := time.Unix(1000, 0)
	s := NewStore()
	s.Append(pointAt(0, base, 0))
	s.Append(pointAt(1, base, 1*time.Millisecond))
	s.Append(pointAt(2, base, 200*time.Millisecond))

	// Age exactly lifetime is pruned, one nanosecond younger survives
	now := base.Add(lifetime)
	live, removed := s.PruneOlderThan(now, lifetime)
	require.Equal(t, 1, removed)

	want := []Point{pointAt(1, base, time.Millisecond), pointAt(2, base, 200*time.Millisecond)}
	if diff := cmp.Diff(want, live); diff != "" {
		t.Errorf("live points mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 2, s.Len())
}

func TestStore_PruneCorrectnessProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := time.Unix(1000, 0)

	for round := 0; round < 200; round++ {
		s := NewStore()
		var all []Point
		offset := time.Duration(0)
		n := rng.Intn(60)
		for i := 0; i < n; i++ {
			offset += time.Duration(rng.Intn(40)) * time.Millisecond
			p := pointAt(uint64(i), base, offset)
			all = append(all, p)
			s.Append(p)
		}

		lifetime := time.Duration(rng.Intn(1000)+1) * time.Millisecond
		now := base.Add(time.Duration(rng.Intn(3000)) * time.Millisecond)

		var want []Point
		for _, p := range all {
			if now.Sub(p.CreatedAt) < lifetime {
				want = append(want, p)
			}
		}

		live, removed := s.PruneOlderThan(now, lifetime)
		require.Equal(t, len(all)-len(want), removed)
		if diff := cmp.Diff(want, live, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("round %d: prune mismatch (-want +got):\n%s", round, diff)
		}
	}
}

func TestStore_PruneZeroesReleasedSlots(t *testing.T) {
	base := time.Unix(1000, 0)
	s := NewStore()
	s.Append(pointAt(0, base, 0))
	s.Append(pointAt(1, base, 0))
	s.Append(pointAt(2, base, 400*time.Millisecond))

	live, _ := s.PruneOlderThan(base.Add(500*time.Millisecond), 500*time.Millisecond)
	require.Len(t, live, 1)

	backing := live[:3]
	require.Equal(t, Point{}, backing[1])
	require.Equal(t, Point{}, backing[2])
}

func TestStore_SnapshotIsIndependent(t *testing.T) {
	base := time.Unix(1000, 0)
	s := NewStore()
	s.Append(pointAt(0, base, 0))

	snap := s.Snapshot()
	snap[0].X = 99

	require.Equal(t, 0.0, s.Snapshot()[0].X)
}

func TestStore_Clear(t *testing.T) {
	base := time.Unix(1000, 0)
	s := NewStore()
	s.Append(pointAt(0, base, 0))
	s.Clear()
	require.Zero(t, s.Len())

	live, removed := s.PruneOlderThan(base, time.Second)
	require.Empty(t, live)
	require.Zero(t, removed)
}
