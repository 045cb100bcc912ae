package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
)

const (
	logDir      = "logs"
	logFileName = "pointer-trail.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging returns a logger writing to logs/pointer-trail.log when debug is set
// The terminal owns stdout/stderr, so without debug every record is discarded
// The returned file is nil when logging is disabled and must be closed by the caller otherwise
func setupLogging(debug bool) (*slog.Logger, *os.File, error) {
	if !debug {
		logger := slog.New(slog.DiscardHandler)
		slog.SetDefault(logger)
		return logger, nil, nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return slog.New(slog.DiscardHandler), nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, logFileName)
	if err := rotateLog(logPath); err != nil {
		return slog.New(slog.DiscardHandler), nil, err
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.DiscardHandler), nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := slog.New(tint.NewHandler(f, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: "15:04:05.000",
		NoColor:    true,
	}))
	slog.SetDefault(logger)
	return logger, f, nil
}

// rotateLog moves an oversized log aside with a timestamp suffix
func rotateLog(logPath string) error {
	info, err := os.Stat(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	if info.Size() <= maxLogSize {
		return nil
	}

	rotated := filepath.Join(filepath.Dir(logPath),
		fmt.Sprintf("pointer-trail-%s.log", time.Now().Format("20060102-150405")))
	if err := os.Rename(logPath, rotated); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}
	return nil
}
