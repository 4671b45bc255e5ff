package pipeline

import "github.com/orizehavi/listingforge/internal/logging"

// runnerConfig holds optional settings for the Runner.
type runnerConfig struct {
	logger      *logging.Logger
	maxAttempts int
	cleanup     bool
	stateHook   func(runID string, state State)
}

// Option configures optional Runner behavior.
type Option func(*runnerConfig)

// WithLogger sets the runner's logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *runnerConfig) { c.logger = l }
}

// WithMaxAttempts bounds each approval gate's regenerate loop.
// n <= 0 keeps the default unbounded behavior.
func WithMaxAttempts(n int) Option {
	return func(c *runnerConfig) { c.maxAttempts = n }
}

// WithCleanupSources removes staged source files after the listing directory
// is organized.
func WithCleanupSources(cleanup bool) Option {
	return func(c *runnerConfig) { c.cleanup = cleanup }
}

// WithStateHook registers a callback invoked on every state transition.
func WithStateHook(hook func(runID string, state State)) Option {
	return func(c *runnerConfig) { c.stateHook = hook }
}
