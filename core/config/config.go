package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"device-inventory/core/database"
	"device-inventory/core/logger"
	"device-inventory/core/reconcile"
	"device-inventory/core/router"
	"device-inventory/core/server"
	"device-inventory/core/storage"
	"device-inventory/feature/export"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LegacyFile is the credentials file read by earlier releases, relative to the config path.
const LegacyFile = "configuration/info.json"

// Legacy variable names, accepted as environment variables and as keys of LegacyFile.
const (
	LegacyHostKey = "MIKROTIK_HOST"
	LegacyUserKey = "MIKROTIK_USER"
	LegacyPassKey = "MIKROTIK_PASS"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Router holds the RouterOS API connection settings.
	Router router.Config `mapstructure:"router"`
	// Reconcile tunes reconciliation passes.
	Reconcile reconcile.Config `mapstructure:"reconcile"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Export selects and configures the snapshot sinks.
	Export export.Config `mapstructure:"export"`
	// Database holds configuration for the snapshot database.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the snapshot object storage.
	Storage storage.Config `mapstructure:"storage"`
}

// LoadConfig loads configuration from environment variables and .env file.
// Router credentials missing from both fall back to the legacy info.json.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := filepath.Join(path, ".env")

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. ROUTER_HOST -> router.host)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Earlier releases used MIKROTIK_* names
	_ = v.BindEnv("router.host", "ROUTER_HOST", LegacyHostKey)
	_ = v.BindEnv("router.username", "ROUTER_USERNAME", LegacyUserKey)
	_ = v.BindEnv("router.password", "ROUTER_PASSWORD", LegacyPassKey)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	applyLegacyFile(&config.Router, filepath.Join(path, LegacyFile))

	return &config, nil
}

// applyLegacyFile fills empty router credentials from the legacy JSON file.
// A missing or unreadable file is ignored; Validate reports what is still missing.
func applyLegacyFile(cfg *router.Config, file string) {
	legacy := viper.New()
	legacy.SetConfigFile(file)
	legacy.SetConfigType("json")
	if err := legacy.ReadInConfig(); err != nil {
		return
	}

	if cfg.Host == "" {
		cfg.Host = legacy.GetString(LegacyHostKey)
	}
	if cfg.Username == "" {
		cfg.Username = legacy.GetString(LegacyUserKey)
	}
	if cfg.Password == "" {
		cfg.Password = legacy.GetString(LegacyPassKey)
	}
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
