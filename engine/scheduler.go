package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/lixenwraith/pointer-trail/core"
)

// Scheduler runs a task once per display refresh, or once per fixed interval when no refresh signal is wired
// The timer is re-armed exactly once per firing; Stop is the single cancellation handle
type Scheduler struct {
	clock    clockwork.Clock
	interval time.Duration
	task     func()

	// Optional display refresh signal, replaces the timer while open
	refresh <-chan struct{}

	// Tick counter for tests and metrics
	tickCount atomic.Uint64

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// SchedulerOption configures optional scheduler behavior
type SchedulerOption func(*Scheduler)

// WithRefresh fires the task on every receive from refresh instead of on the interval timer
// If refresh is closed the scheduler falls back to the interval timer
func WithRefresh(refresh <-chan struct{}) SchedulerOption {
	return func(s *Scheduler) {
		s.refresh = refresh
	}
}

// NewScheduler creates a stopped scheduler that calls task every interval once started
func NewScheduler(clock clockwork.Clock, interval time.Duration, task func(), opts ...SchedulerOption) (*Scheduler, error) {
	if clock == nil {
		return nil, errors.New("scheduler: clock is required")
	}
	if interval <= 0 {
		return nil, errors.New("scheduler: interval must be > 0")
	}
	if task == nil {
		return nil, errors.New("scheduler: task is required")
	}

	s := &Scheduler{
		clock:    clock,
		interval: interval,
		task:     task,
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start begins the scheduling loop. A stopped scheduler cannot be restarted
func (s *Scheduler) Start() {
	if s.stopped() {
		return
	}
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		core.Go(s.loop)
	}
}

// Stop cancels the pending re-arm and waits for the loop to exit
// No task invocation begins after Stop returns. Must not be called from inside the task
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	s.running.Store(false)
}

// Ticks returns the number of times the task has fired
func (s *Scheduler) Ticks() uint64 {
	return s.tickCount.Load()
}

func (s *Scheduler) stopped() bool {
	select {
	case <-s.stopChan:
		return true
	default:
		return false
	}
}

// loop owns the timer; only this goroutine arms or re-arms it
func (s *Scheduler) loop() {
	defer s.wg.Done()

	refresh := s.refresh

	var timer clockwork.Timer
	var timerC <-chan time.Time
	arm := func() {
		if timer == nil {
			timer = s.clock.NewTimer(s.interval)
		} else {
			timer.Reset(s.interval)
		}
		timerC = timer.Chan()
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	if refresh == nil {
		arm()
	}

	for {
		select {
		case <-s.stopChan:
			return

		case _, ok := <-refresh:
			if !ok {
				refresh = nil
				arm()
				continue
			}
			// Stop wins over a refresh that became ready at the same time
			if s.stopped() {
				return
			}
			s.fire()

		case <-timerC:
			if s.stopped() {
				return
			}
			s.fire()
			arm()
		}
	}
}

func (s *Scheduler) fire() {
	s.tickCount.Add(1)
	s.task()
}
