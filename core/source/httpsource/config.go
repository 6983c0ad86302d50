package httpsource

// Config holds the remote API settings.
type Config struct {
	// BaseURL is the API root, without trailing slash.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:8000/api"`
	// APIKey is sent as X-API-Key when set.
	APIKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds bounds each batch request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
