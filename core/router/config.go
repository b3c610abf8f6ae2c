package router

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultPort is the RouterOS API port.
	DefaultPort = 8728
	// DefaultTLSPort is the RouterOS API-SSL port.
	DefaultTLSPort = 8729
)

// Config holds configuration for the RouterOS API connection.
type Config struct {
	// Host is the router address (IP or hostname).
	Host string `mapstructure:"host" default:""`
	// Port is the API port. Zero selects 8728, or 8729 when UseTLS is set.
	Port int `mapstructure:"port" default:"0"`
	// Username is the API user.
	Username string `mapstructure:"username" default:""`
	// Password is the API user's password.
	Password string `mapstructure:"password" default:""`
	// UseTLS connects to the API-SSL service.
	UseTLS bool `mapstructure:"use_tls" default:"false"`
	// InsecureSkipVerify disables certificate verification for API-SSL.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" default:"false"`
	// TimeoutSeconds bounds dial and login.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}

// Validate reports ErrConfiguration when any credential is missing.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Host) == "" {
		missing = append(missing, "host")
	}
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// Address returns host:port, applying the default port for the selected mode.
func (c Config) Address() string {
	port := c.Port
	if port <= 0 {
		port = DefaultPort
		if c.UseTLS {
			port = DefaultTLSPort
		}
	}
	return net.JoinHostPort(strings.TrimSpace(c.Host), strconv.Itoa(port))
}

// Timeout returns the dial timeout, defaulting to 10 seconds.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
