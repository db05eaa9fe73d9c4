// Package logging builds the logrus logger shared by the dashboard.
//
// The terminal belongs to the TUI, so output goes to a file rather than
// stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05"

// New returns a JSON logger writing to path at the given level. An empty
// path discards output. Unknown levels fall back to info. The returned
// closer releases the log file.
func New(path, level string) (*logrus.Logger, io.Closer, error) {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: timestampFormat})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if path == "" {
		l.SetOutput(io.Discard)
		return l, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("logging: mkdir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	l.SetOutput(f)
	return l, f, nil
}

// Nop returns a logger that discards everything.
func Nop() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
