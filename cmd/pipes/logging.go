package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	logDir      = "logs"
	logFileName = "pipes.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging points logrus at a file under logDir when debug is set and
// discards everything otherwise. The terminal belongs to the animation, so
// logs never go to stdout or stderr. Returns the open file, or nil.
func setupLogging(debug bool) *os.File {
	if !debug {
		logrus.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		logrus.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	var rotateErr error
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("pipes-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			rotateErr = fmt.Errorf("rotate %s: %w", logPath, err)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logrus.SetOutput(io.Discard)
		return nil
	}

	logrus.SetOutput(f)
	logrus.SetLevel(logrus.DebugLevel)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	if rotateErr != nil {
		logrus.WithError(rotateErr).Warn("log rotation failed, appending to oversized log")
	}
	return f
}
