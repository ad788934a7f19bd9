package ppap

import (
	"time"

	"go.uber.org/zap"

	"github.com/Rindrics/ppap-cli/internal/delay"
)

// DefaultTickInterval is the granularity of the delay before the password
// message is sent.
const DefaultTickInterval = delay.DefaultTick

// Clock supplies timers for the delay step.
type Clock = delay.Clock

// orchestratorConfig holds configuration for the orchestrator.
type orchestratorConfig struct {
	logger       *zap.Logger
	observer     func(Event)
	tickInterval time.Duration
	clock        Clock
	sender       string
	archiver     Archiver
}

// Option configures the Orchestrator.
type Option func(*orchestratorConfig)

// WithLogger sets the logger. Passwords are never logged.
func WithLogger(logger *zap.Logger) Option {
	return func(c *orchestratorConfig) {
		c.logger = logger
	}
}

// WithObserver registers a callback that receives every state transition
// and delay tick. It runs on the delivering goroutine and must not block.
func WithObserver(fn func(Event)) Option {
	return func(c *orchestratorConfig) {
		c.observer = fn
	}
}

// WithTickInterval sets the delay granularity.
// Default: 60 seconds
func WithTickInterval(d time.Duration) Option {
	return func(c *orchestratorConfig) {
		c.tickInterval = d
	}
}

// WithClock replaces the timer source used by the delay step.
func WithClock(clock Clock) Option {
	return func(c *orchestratorConfig) {
		c.clock = clock
	}
}

// WithSender sets the name used to sign both messages.
func WithSender(name string) Option {
	return func(c *orchestratorConfig) {
		c.sender = name
	}
}

// WithArchiver replaces the archive implementation.
func WithArchiver(a Archiver) Option {
	return func(c *orchestratorConfig) {
		c.archiver = a
	}
}
