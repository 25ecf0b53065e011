// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure Postgres, MySQL or SQLite
// connections based on the application's configuration. The content tables the
// reference collector reads, and the media_records table the media feature owns,
// live in this database.
//
// # Schema Inspection
//
// GetTableColumns returns the columns of a table for the configured dialect. The
// integrity feature uses it to verify that every configured content table exposes
// its asset column and that media_records matches its model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "blog_posts")
package database
