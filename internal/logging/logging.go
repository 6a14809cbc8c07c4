// Package logging provides the structured logger shared by the CLI, the
// catalog fetcher and the page host. Entries carry a category field so that
// fetch, render and serve diagnostics can be told apart in one stream.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Category groups related log messages.
type Category string

const (
	CatFetch  Category = "fetch"  // catalog requests and decoding
	CatRender Category = "render" // container population
	CatServe  Category = "serve"  // page host
	CatConfig Category = "config" // settings and proxy config files
)

var (
	mu  sync.Mutex
	std = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05",
	})
	return l
}

// Logger returns the process-wide logger.
func Logger() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	return std
}

// SetDebug raises the level to Debug when enabled, Warn otherwise.
func SetDebug(enabled bool) {
	level := logrus.WarnLevel
	if enabled {
		level = logrus.DebugLevel
	}
	Logger().SetLevel(level)
}

// SetOutput redirects the process-wide logger.
func SetOutput(w io.Writer) {
	Logger().SetOutput(w)
}

// For returns an entry tagged with the given category.
func For(cat Category) *logrus.Entry {
	return Logger().WithField("category", string(cat))
}

// Discard returns an entry that writes nowhere. Useful as a default for
// components constructed without a logger.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
