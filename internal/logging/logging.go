// Package logging centralizes logger construction so every package logs with
// the same level and format.
package logging

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	root    = logrus.New()
	tracked = []*logrus.Logger{root}
)

// GetLogger returns the shared root logger.
func GetLogger() *logrus.Logger {
	return root
}

// NewLogger creates a logger that follows later global level changes.
func NewLogger() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()

	logger := logrus.New()
	logger.SetLevel(root.GetLevel())
	logger.SetFormatter(root.Formatter)
	tracked = append(tracked, logger)
	return logger
}

// SetAllLogLevels applies a level to the global logrus instance and every
// logger handed out by this package.
func SetAllLogLevels(level logrus.Level) {
	mu.Lock()
	defer mu.Unlock()

	logrus.SetLevel(level)
	for _, logger := range tracked {
		logger.SetLevel(level)
	}
}

// ParseLevel parses a textual log level, falling back to info.
func ParseLevel(levelStr string) logrus.Level {
	if levelStr == "" {
		return logrus.InfoLevel
	}
	level, err := logrus.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
