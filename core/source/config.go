package source

import (
	"objectsync/core/source/bucketsource"
	"objectsync/core/source/httpsource"
	"objectsync/core/source/sqlsource"
)

const (
	KindSQL    = "sql"
	KindBucket = "bucket"
	KindHTTP   = "http"
)

// Config selects and configures the record source.
type Config struct {
	// Kind is the source kind (sql, bucket, http).
	Kind string `mapstructure:"kind" default:"sql"`
	// Types lists the type tags served by the bucket and http sources.
	Types []string `mapstructure:"types"`
	// Tables maps types onto tables for the sql source.
	Tables []sqlsource.Table `mapstructure:"tables"`
	// Bucket configures the bucket source.
	Bucket bucketsource.Config `mapstructure:"bucket"`
	// HTTP configures the http source.
	HTTP httpsource.Config `mapstructure:"http"`
}

// IsValidKind checks if the configured kind is supported.
func (c Config) IsValidKind() bool {
	switch c.Kind {
	case KindSQL, KindBucket, KindHTTP:
		return true
	default:
		return false
	}
}
