// Package database handles database connections and schema inspection.
//
// It wraps GORM to open MySQL or SQLite connections from the application's
// configuration. The SQL record source uses it to reach its tables.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns on either dialect. MissingColumns is used
// at startup to verify that every configured model table carries the columns its
// mapping reads, so misconfiguration fails fast instead of on the first fetch.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "people", "id", "name")
package database
