package refresh

import "time"

// Config holds the queue limits.
type Config struct {
	// MaxQueueSize caps the number of ids a single ModelQueue accepts.
	MaxQueueSize int `mapstructure:"max_queue_size" default:"150"`
	// MaxInFlight caps the debounced queues that may be fetching at the same time.
	MaxInFlight int `mapstructure:"max_in_flight" default:"6"`
	// DebounceMS is the default quiet period before a queue fires.
	DebounceMS int `mapstructure:"debounce_ms" default:"150"`
}

const (
	DefaultMaxQueueSize = 150
	DefaultMaxInFlight  = 6
	DefaultDebounceMS   = 150
)

func (c Config) withDefaults() Config {
	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = DefaultMaxQueueSize
	}
	if c.MaxInFlight <= 0 {
		c.MaxInFlight = DefaultMaxInFlight
	}
	if c.DebounceMS < 0 {
		c.DebounceMS = DefaultDebounceMS
	}
	return c
}

// Debounce returns DebounceMS as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}
