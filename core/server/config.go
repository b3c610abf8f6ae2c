package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// RequestTimeoutSeconds bounds one reconciliation pass triggered by a request.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" default:"60"`
	// Swagger exposes the API documentation at /swagger.
	Swagger bool `mapstructure:"swagger" default:"true"`
}

// Address returns the listen address for fiber.App.Listen.
func (c Config) Address() string {
	if c.Port == "" {
		return ":8080"
	}
	return ":" + c.Port
}

// AuthEnabled reports whether requests must carry the API key.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}

// RequestTimeout returns the per-request pass timeout, defaulting to one minute.
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
