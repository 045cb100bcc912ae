package trail

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func TestSampler_ThrottleScenario(t *testing.T) {
	start := time.Unix(1000, 0)
	clk := clockwork.NewFakeClockAt(start)
	s := NewSampler(clk, 20*time.Millisecond)

	events := []struct {
		at   time.Duration
		x, y float64
	}{
		{0, 0, 0},
		{5 * time.Millisecond, 1, 1},
		{10 * time.Millisecond, 2, 2},
		{25 * time.Millisecond, 3, 3},
		{45 * time.Millisecond, 4, 4},
	}

	var accepted []Point
	for _, ev := range events {
		clk.Advance(start.Add(ev.at).Sub(clk.Now()))
		if p, ok := s.Sample(ev.x, ev.y); ok {
			accepted = append(accepted, p)
		}
	}

	want := []Point{
		{ID: 0, X: 0, Y: 0, CreatedAt: start},
		{ID: 1, X: 3, Y: 3, CreatedAt: start.Add(25 * time.Millisecond)},
		{ID: 2, X: 4, Y: 4, CreatedAt: start.Add(45 * time.Millisecond)},
	}
	if diff := cmp.Diff(want, accepted); diff != "" {
		t.Errorf("accepted samples mismatch (-want +got):\n%s", diff)
	}
}

func TestSampler_FirstEventAlwaysAccepted(t *testing.T) {
	clk := clockwork.NewFakeClock()
	s := NewSampler(clk, time.Hour)

	p, ok := s.Sample(7, 9)
	require.True(t, ok)
	require.Equal(t, uint64(0), p.ID)
	require.Equal(t, clk.Now(), p.CreatedAt)

	_, ok = s.Sample(8, 9)
	require.False(t, ok)
}

func TestSampler_GapMeasuredFromLastAccepted(t *testing.T) {
	clk := clockwork.NewFakeClock()
	s := NewSampler(clk, 20*time.Millisecond)

	_, ok := s.Sample(0, 0)
	require.True(t, ok)

	// A steady stream every 15ms: dropped events must not push the window forward
	clk.Advance(15 * time.Millisecond)
	_, ok = s.Sample(1, 1)
	require.False(t, ok)

	clk.Advance(15 * time.Millisecond)
	p, ok := s.Sample(2, 2)
	require.True(t, ok)
	require.Equal(t, uint64(1), p.ID)
}

func TestSampler_ResetRearmsWithoutReusingIDs(t *testing.T) {
	clk := clockwork.NewFakeClock()
	s := NewSampler(clk, 20*time.Millisecond)

	_, ok := s.Sample(0, 0)
	require.True(t, ok)

	s.Reset()
	p, ok := s.Sample(1, 1)
	require.True(t, ok, "first event after reset is accepted")
	require.Equal(t, uint64(1), p.ID)
	require.Equal(t, uint64(2), s.NextID())
}

func TestSampler_RandomStreamKeepsSpacingAndIDOrder(t *testing.T) {
	const interval = 20 * time.Millisecond
	rng := rand.New(rand.NewSource(42))
	clk := clockwork.NewFakeClockAt(time.Unix(1000, 0))
	s := NewSampler(clk, interval)

	var accepted []Point
	for i := 0; i < 5000; i++ {
		clk.Advance(time.Duration(rng.Intn(int(30*time.Millisecond))) + time.Microsecond)
		if p, ok := s.Sample(rng.Float64()*200, rng.Float64()*50); ok {
			accepted = append(accepted, p)
		}
	}

	require.NotEmpty(t, accepted)
	require.Equal(t, uint64(0), accepted[0].ID)
	for i := 1; i < len(accepted); i++ {
		gap := accepted[i].CreatedAt.Sub(accepted[i-1].CreatedAt)
		if gap < interval {
			t.Fatalf("samples %d and %d only %v apart", i-1, i, gap)
		}
		if accepted[i].ID != accepted[i-1].ID+1 {
			t.Fatalf("ids not strictly increasing: %d after %d", accepted[i].ID, accepted[i-1].ID)
		}
	}
}
