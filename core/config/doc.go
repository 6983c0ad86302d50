// Package config provides configuration management for objectsync.
//
// It utilizes Viper for loading configuration from a .env file, an optional
// config.yaml and environment variables. Defaults come from the `default` struct
// tags of each section, so every key is also reachable from the environment
// (QUEUE_MAX_IN_FLIGHT -> queue.max_in_flight).
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, metrics toggle
//   - Log: level and format
//   - Database: MySQL or SQLite connection for the sql source
//   - Storage: S3/MinIO credentials and bucket for the bucket source
//   - Queue: batch size cap, in-flight cap, debounce window
//   - Source: source kind and per-kind settings
//   - Mappings: relationship bindings (config.yaml only)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Queue.MaxInFlight)
package config
