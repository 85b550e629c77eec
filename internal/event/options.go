package event

import "github.com/rs/zerolog"

// BusOption configures an event Bus.
type BusOption func(*busConfig)

// busConfig contains configuration for the event bus.
type busConfig struct {
	// logger receives handler failure and panic reports.
	logger zerolog.Logger

	// panicHandler, if set, is called after a handler panic is logged.
	panicHandler PanicHandler
}

// defaultBusConfig returns sensible default configuration.
func defaultBusConfig() busConfig {
	return busConfig{
		logger:       zerolog.Nop(),
		panicHandler: nil,
	}
}

// WithLogger sets the logger used to report handler failures and panics.
func WithLogger(logger zerolog.Logger) BusOption {
	return func(c *busConfig) {
		c.logger = logger
	}
}

// WithBusPanicHandler sets an additional panic handler for the bus.
// Panics are always logged; the handler runs afterwards.
func WithBusPanicHandler(h PanicHandler) BusOption {
	return func(c *busConfig) {
		c.panicHandler = h
	}
}
