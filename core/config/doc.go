// Package config provides configuration management for the asset janitor.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// section and are validated with go-playground/validator after loading.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port, API key and body limit
//   - Database: Postgres, MySQL or SQLite connection details
//   - Storage: S3/MinIO credentials, bucket, public URL and per-call timeout
//   - Log: Logging level and format
//   - Assets: scan folders, catch-all folder, content kinds and ingest settings
//
// List settings such as ASSETS_SCAN_FOLDERS are comma separated.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Assets.Folders())
package config
