package logging

import (
	"github.com/inconshreveable/log15"
)

// New returns a logger tagged with the service name that writes records at
// or above level to stdout. An unknown level falls back to info.
func New(service, level string) log15.Logger {
	return NewWithHandler(service, level, log15.StdoutHandler)
}

// NewWithHandler is New writing to h instead of stdout.
func NewWithHandler(service, level string, h log15.Handler) log15.Logger {
	lvl, err := log15.LvlFromString(level)
	if err != nil {
		lvl = log15.LvlInfo
	}

	logger := log15.New("service", service)
	logger.SetHandler(log15.LvlFilterHandler(lvl, h))
	return logger
}

// Discard returns a logger that drops every record.
func Discard() log15.Logger {
	logger := log15.New()
	logger.SetHandler(log15.DiscardHandler())
	return logger
}
