package engine

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestTimeProvider_Monotonic(t *testing.T) {
	provider := NewTimeProvider()

	t1 := provider.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := provider.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 to be after t1, but got t1=%v, t2=%v", t1, t2)
	}

	// Sub on readings with a monotonic component ignores wall clock jumps
	if diff := t2.Sub(t1); diff < 10*time.Millisecond {
		t.Errorf("Expected at least 10ms difference, got %v", diff)
	}
}

func TestTimeProvider_FakeSubstitute(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var provider clockwork.Clock = clockwork.NewFakeClockAt(start)

	if got := provider.Now(); !got.Equal(start) {
		t.Errorf("Expected %v, got %v", start, got)
	}

	provider.(*clockwork.FakeClock).Advance(250 * time.Millisecond)
	if got := provider.Since(start); got != 250*time.Millisecond {
		t.Errorf("Expected 250ms elapsed, got %v", got)
	}
}
