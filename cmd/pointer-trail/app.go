package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lixenwraith/pointer-trail/config"
	"github.com/lixenwraith/pointer-trail/core"
	"github.com/lixenwraith/pointer-trail/render"
	"github.com/lixenwraith/pointer-trail/trail"
)

// appDeps are the collaborators of one running view
type appDeps struct {
	cfg      config.Config
	logger   *slog.Logger
	screen   tcell.Screen
	clock    clockwork.Clock
	registry prometheus.Registerer

	// refresh optionally drives aging ticks instead of the frame interval
	refresh <-chan struct{}
	// onStroke is played when a new stroke starts
	onStroke func()
}

// app hosts one trail on a tcell screen
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	screen   tcell.Screen
	feed     *render.PointerFeed
	term     *render.Terminal
	recorder *trail.Recorder
	trail    *trail.Trail

	snapshots int
}

func newApp(d appDeps) (*app, error) {
	a := &app{
		cfg:      d.cfg,
		logger:   d.logger,
		screen:   d.screen,
		feed:     render.NewPointerFeed(),
		term:     render.NewTerminal(d.screen),
		recorder: &trail.Recorder{},
	}

	var onStrokeStart func(trail.Point)
	if d.onStroke != nil {
		onStrokeStart = func(trail.Point) { d.onStroke() }
	}

	tr, err := trail.New(trail.Config{
		Clock:          d.clock,
		Logger:         d.logger,
		Metrics:        trail.NewMetrics(d.registry),
		Lifetime:       d.cfg.Lifetime,
		SampleInterval: d.cfg.SampleInterval,
		FrameInterval:  d.cfg.FrameInterval,
		Refresh:        d.refresh,
		OnStrokeStart:  onStrokeStart,
	}, a.feed, trail.MultiPublisher{a.term, a.recorder})
	if err != nil {
		return nil, err
	}
	a.trail = tr

	a.term.SetFooter(fmt.Sprintf(" q quit · s snapshot · c clear · %s", shortSession(tr)))
	return a, nil
}

// run mounts the trail and processes screen events until quit or ctx is done
// The trail is unmounted before run returns
func (a *app) run(ctx context.Context) error {
	if err := a.trail.Mount(); err != nil {
		return fmt.Errorf("failed to mount trail: %w", err)
	}
	defer a.trail.Unmount()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)

	core.Go(func() {
		a.pollEvents(events, done)
	})

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}
		}
	}
}

// pollEvents reads screen events until the screen is finalized or done is closed
// Mouse events go to the feed on this goroutine, so a sample is timestamped when it is read
// instead of after waiting in the queue behind key handling
func (a *app) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}
		if a.feed.HandleEvent(ev) {
			continue
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent returns false when the user asked to quit
func (a *app) handleEvent(ev tcell.Event) bool {
	if a.feed.HandleEvent(ev) {
		return true
	}

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 's':
				if path, err := a.saveSnapshot(); err != nil {
					a.logger.Warn("snapshot failed", "error", err)
				} else {
					a.logger.Info("snapshot saved", "path", path)
				}
			case 'c':
				a.trail.Clear()
				a.term.Redraw()
			}
		}

	case *tcell.EventResize:
		a.term.Redraw()
	}

	return true
}

// saveSnapshot writes the last published frame as PNG into the snapshot directory
func (a *app) saveSnapshot() (string, error) {
	cols, rows := a.screen.Size()
	a.snapshots++
	name := fmt.Sprintf("trail-%s-%03d.png", shortSession(a.trail), a.snapshots)
	path := filepath.Join(a.cfg.SnapshotDir, name)

	if err := os.MkdirAll(a.cfg.SnapshotDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	snap := render.NewSnapshot(cols, rows)
	snap.SetBackground(render.RGBBackground)
	if err := snap.SavePNG(path, a.recorder.Last()); err != nil {
		return "", err
	}
	return path, nil
}

func shortSession(tr *trail.Trail) string {
	return tr.Session().String()[:8]
}
