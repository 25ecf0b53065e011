// Package logger builds the zap logger shared by the server and the CLI.
//
// A "debug" level selects zap's development config; any other level selects
// the production config at that level. Format picks json or console encoding.
// Timestamps are ISO8601 and every entry carries service=asset-janitor.
//
// # Request Correlation
//
// WithRayID copies the ray_id set by the rayid middleware onto the logger, so
// every line written while serving a request can be matched to it. Middleware
// logs one line per request with its status and latency.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	log.Info("Starting audit", zap.Strings("folders", folders))
//
//	l := logger.WithRayID(log, c)
//	l.Error("Delete failed", zap.Error(err))
package logger
