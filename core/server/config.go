package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080" validate:"required,numeric"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps request bodies, uploads included.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"50" validate:"gte=0"`
}

// BodyLimit returns the body limit in bytes, defaulting to 50MB.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 50 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}

// Protected reports whether an API key is configured.
func (c Config) Protected() bool {
	return c.ApiKey != ""
}
