// Package logging provides one leveled, component-tagged logger per
// package, built on top of charmbracelet/log.
package logging

import (
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu      sync.Mutex
	loggers = map[string]*log.Logger{}
)

// For returns the shared logger for a component, creating it on first use.
// Components are tagged by prefix (e.g. "ax25", "kiss", "tnc") so a single
// `cmd` binary's output can be filtered or grepped by subsystem.
func For(component string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()

	if l, ok := loggers[component]; ok {
		return l
	}

	var l = log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          component,
		ReportTimestamp: true,
	})
	l.SetLevel(defaultLevel)
	loggers[component] = l

	return l
}

// SetLevel changes the level of every logger created so far, and of any
// logger created later via For.
func SetLevel(level log.Level) {
	mu.Lock()
	defer mu.Unlock()

	for _, l := range loggers {
		l.SetLevel(level)
	}

	defaultLevel = level
}

var defaultLevel = log.InfoLevel
