package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/pointer-trail/audio"
	"github.com/lixenwraith/pointer-trail/config"
	"github.com/lixenwraith/pointer-trail/core"
	"github.com/lixenwraith/pointer-trail/engine"
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the main goroutine crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "pointer-trail: %v\n", err)
		os.Exit(2)
	}

	logger, logFile, err := setupLogging(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging disabled: %v\n", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "pointer-trail: %v\n", err)
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	if err := applyColorMode(cfg.ColorMode); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	core.SetCrashRestore(screen.Fini)

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, registry, logger)
		defer srv.Close()
	}

	var onStroke func()
	if cfg.Sound {
		// Non-fatal, the trail runs without sound
		chime, closeSpeaker, err := audio.OpenSpeaker()
		if err != nil {
			logger.Warn("audio disabled", "error", err)
		} else {
			defer closeSpeaker()
			onStroke = chime.Play
		}
	}

	a, err := newApp(appDeps{
		cfg:      cfg,
		logger:   logger,
		screen:   screen,
		clock:    engine.NewTimeProvider(),
		registry: registry,
		onStroke: onStroke,
	})
	if err != nil {
		return err
	}

	return a.run(ctx)
}

// applyColorMode steers tcell's color detection before the screen is created
func applyColorMode(mode string) error {
	var key, value string
	switch mode {
	case config.Color256:
		key, value = "TCELL_TRUECOLOR", "disable"
	case config.ColorTrueColor:
		key, value = "COLORTERM", "truecolor"
	default:
		return nil
	}
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("failed to set %s for color mode %q: %w", key, mode, err)
	}
	return nil
}

// serveMetrics exposes registry on addr until the returned server is closed
func serveMetrics(addr string, registry *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	core.Go(func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics listener stopped", "addr", addr, "error", err)
		}
	})
	return srv
}
