package trail

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/lixenwraith/pointer-trail/constants"
	"github.com/lixenwraith/pointer-trail/engine"
)

// ErrUnmounted is returned when mounting a trail that has already been torn down
var ErrUnmounted = errors.New("trail: already unmounted")

// Source delivers raw pointer positions in viewport coordinates
// Subscribe returns the function that ends the subscription
type Source interface {
	Subscribe(fn func(x, y float64)) (cancel func())
}

// Publisher receives one frame per tick, after pruning
type Publisher interface {
	Publish(Frame)
}

// PublisherFunc adapts a function to Publisher
type PublisherFunc func(Frame)

// Publish calls f(frame)
func (f PublisherFunc) Publish(frame Frame) {
	f(frame)
}

// Config holds the trail timing and collaborators
type Config struct {
	Clock   clockwork.Clock
	Logger  *slog.Logger
	Metrics *Metrics

	// Optional with defaults.
	Lifetime       time.Duration
	SampleInterval time.Duration
	FrameInterval  time.Duration

	// Refresh, when set, drives ticks from the display refresh instead of FrameInterval
	Refresh <-chan struct{}

	// OnStrokeStart is called with the first point appended to an empty trail
	OnStrokeStart func(Point)
}

// Validate fills defaults and rejects invalid timing
func (c *Config) Validate() error {
	if c.Clock == nil {
		c.Clock = engine.NewTimeProvider()
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.Metrics == nil {
		c.Metrics = NewMetrics(nil)
	}

	if c.Lifetime == 0 {
		c.Lifetime = constants.TrailLifetime
	}
	if c.Lifetime < 0 {
		return errors.New("lifetime must be > 0")
	}

	if c.SampleInterval == 0 {
		c.SampleInterval = constants.SampleInterval
	}
	if c.SampleInterval < 0 {
		return errors.New("sample interval must be > 0")
	}

	if c.FrameInterval == 0 {
		c.FrameInterval = constants.FrameUpdateInterval
	}
	if c.FrameInterval < 0 {
		return errors.New("frame interval must be > 0")
	}

	return nil
}

// Trail owns the sampler, store and aging scheduler of one mounted view
// Pointer events and ticks may arrive on different goroutines; one mutex covers sampler and store,
// and a tick holds it across prune and projection so the published frame is always a pruned set
type Trail struct {
	cfg       Config
	session   uuid.UUID
	source    Source
	publisher Publisher
	scheduler *engine.Scheduler

	mu           sync.Mutex
	sampler      *Sampler
	store        *Store
	mounted      bool
	closed       bool
	cancelSource func()
}

// New creates an unmounted trail
// source may be nil when the host calls Pointer directly
func New(cfg Config, source Source, publisher Publisher) (*Trail, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid trail config: %w", err)
	}
	if publisher == nil {
		return nil, errors.New("trail: publisher is required")
	}

	t := &Trail{
		cfg:       cfg,
		session:   uuid.New(),
		source:    source,
		publisher: publisher,
		sampler:   NewSampler(cfg.Clock, cfg.SampleInterval),
		store:     NewStore(),
	}

	var opts []engine.SchedulerOption
	if cfg.Refresh != nil {
		opts = append(opts, engine.WithRefresh(cfg.Refresh))
	}
	scheduler, err := engine.NewScheduler(cfg.Clock, cfg.FrameInterval, t.tick, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create aging scheduler: %w", err)
	}
	t.scheduler = scheduler

	return t, nil
}

// Session returns the identifier used to correlate this view's logs and snapshots
func (t *Trail) Session() uuid.UUID {
	return t.session
}

// Mount subscribes to the pointer source and starts the aging scheduler
// Mounting twice is a no-op; mounting after Unmount returns ErrUnmounted
func (t *Trail) Mount() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrUnmounted
	}
	if t.mounted {
		t.mu.Unlock()
		return nil
	}
	t.mounted = true
	t.mu.Unlock()

	if t.source != nil {
		cancel := t.source.Subscribe(t.Pointer)
		t.mu.Lock()
		if t.closed {
			// Unmounted while subscribing
			t.mu.Unlock()
			cancel()
			return ErrUnmounted
		}
		t.cancelSource = cancel
		t.mu.Unlock()
	}
	t.scheduler.Start()

	t.cfg.Logger.Debug("trail mounted",
		"session", t.session.String(),
		"lifetime", t.cfg.Lifetime,
		"sample_interval", t.cfg.SampleInterval,
		"frame_interval", t.cfg.FrameInterval,
	)
	return nil
}

// Unmount cancels the pointer subscription and the aging scheduler together
// After it returns no point is appended, pruned or published. Safe to call more than once
func (t *Trail) Unmount() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	cancel := t.cancelSource
	t.cancelSource = nil
	live := t.store.Len()
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	t.scheduler.Stop()

	t.cfg.Logger.Debug("trail unmounted",
		"session", t.session.String(),
		"ticks", t.scheduler.Ticks(),
		"live_points", live,
	)
}

// Pointer offers one raw pointer position to the sampler
// Ignored unless the trail is mounted
func (t *Trail) Pointer(x, y float64) {
	t.mu.Lock()
	if !t.mounted || t.closed {
		t.mu.Unlock()
		return
	}
	p, ok := t.sampler.Sample(x, y)
	if !ok {
		t.mu.Unlock()
		t.cfg.Metrics.SamplesDropped.Inc()
		return
	}
	strokeStart := t.store.Len() == 0
	t.store.Append(p)
	t.mu.Unlock()

	t.cfg.Metrics.SamplesAccepted.Inc()
	if strokeStart && t.cfg.OnStrokeStart != nil {
		t.cfg.OnStrokeStart(p)
	}
}

// Clear drops every live point and re-arms the sampler so the next event starts a new stroke
// The next tick publishes the empty frame
func (t *Trail) Clear() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	dropped := t.store.Len()
	t.store.Clear()
	t.sampler.Reset()
	t.mu.Unlock()

	t.cfg.Metrics.LivePoints.Set(0)
	t.cfg.Logger.Debug("trail cleared", "session", t.session.String(), "dropped", dropped)
}

// Points returns a copy of the live points in creation order
func (t *Trail) Points() []Point {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.Snapshot()
}

// Ticks returns how many aging ticks have run
func (t *Trail) Ticks() uint64 {
	return t.scheduler.Ticks()
}

// tick prunes expired points and publishes the projection of what is left
func (t *Trail) tick() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	now := t.cfg.Clock.Now()
	live, removed := t.store.PruneOlderThan(now, t.cfg.Lifetime)
	frame := ProjectAll(live, now, t.cfg.Lifetime)
	t.mu.Unlock()

	t.cfg.Metrics.Ticks.Inc()
	t.cfg.Metrics.PointsPruned.Add(float64(removed))
	t.cfg.Metrics.LivePoints.Set(float64(len(frame.Glyphs)))

	t.publisher.Publish(frame)
}
