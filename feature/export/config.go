package export

import "strings"

// Sink names accepted in Config.Sinks.
const (
	SinkFile     = "file"
	SinkDatabase = "database"
	SinkStorage  = "storage"
	SinkNATS     = "nats"
)

// Config holds the export section of the application configuration.
type Config struct {
	// Sinks is a comma-separated list of sink names. Empty disables export.
	Sinks string `mapstructure:"sinks" default:""`
	// FilePath is the JSON output file of the file sink. "-" writes to stdout.
	FilePath string `mapstructure:"file_path" default:"inventory.json"`
	// Prefix is the object key prefix of the storage sink.
	Prefix string `mapstructure:"prefix" default:"snapshots"`
	// NATS configures the message bus sink.
	NATS NATSConfig `mapstructure:"nats"`
}

// NATSConfig holds the NATS connection settings.
type NATSConfig struct {
	URL            string `mapstructure:"url" default:"nats://127.0.0.1:4222"`
	Subject        string `mapstructure:"subject" default:"inventory.snapshots"`
	User           string `mapstructure:"user" default:""`
	Password       string `mapstructure:"password" default:""`
	Name           string `mapstructure:"name" default:"device-inventory"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" default:"5"`
}

// SinkNames returns the normalized, de-duplicated sink names in configured order.
func (c Config) SinkNames() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(c.Sinks, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// WritesStdout reports whether the file sink is enabled and targets stdout.
func (c Config) WritesStdout() bool {
	if c.FilePath != "" && c.FilePath != "-" {
		return false
	}
	for _, name := range c.SinkNames() {
		if name == SinkFile {
			return true
		}
	}
	return false
}
