// Package server holds the HTTP server configuration and error rendering.
//
// While the start command handles the server startup, this package defines the
// configuration structure for server settings.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key protecting the admin routes
// and the request body limit applied to uploads.
//
// # Errors
//
// WriteError renders classified errors as {"error", "source", "message"}:
// InvalidRequest maps to 400, storage timeouts to 503 and every other
// failure to 500.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the start command to configure Fiber.
package server
