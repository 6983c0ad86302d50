package bucketsource

// Config holds the bucket layout.
type Config struct {
	// Prefix is prepended to every record key.
	Prefix string `mapstructure:"prefix" default:"records"`
	// Concurrency caps parallel object reads per batch.
	Concurrency int `mapstructure:"concurrency" default:"8"`
}
