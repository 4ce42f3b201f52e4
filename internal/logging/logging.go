// Package logging configures the process logger. The TUI owns the terminal,
// so log output goes to a file or nowhere.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing JSON lines to path. An empty path discards
// everything. The returned close func is always non-nil.
func New(path string, debug bool) (*logrus.Logger, func() error, error) {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}

	path = strings.TrimSpace(path)
	if path == "" {
		l.SetOutput(io.Discard)
		return l, func() error { return nil }, nil
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	l.SetOutput(f)
	return l, f.Close, nil
}

// Discard is a logger for tests and for callers that pass nil.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
