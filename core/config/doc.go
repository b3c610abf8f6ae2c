// Package config provides configuration management for device-inventory.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (loaded with godotenv).
//
// # Configuration Structure
//
// The Config struct is divided into subsections, each owned by the package
// that consumes it:
//   - Router: RouterOS API host, credentials, TLS and timeout (ROUTER_*)
//   - Reconcile: active-only, bridge variant, ARP policy, strict lookups (RECONCILE_*)
//   - Server: HTTP port, API key, request timeout (SERVER_*)
//   - Log: level and format (LOG_*)
//   - Export: sink list, file path, object prefix, NATS settings (EXPORT_*)
//   - Database / Storage: snapshot sink backends (DATABASE_*, STORAGE_*)
//
// Defaults come from `default:"..."` struct tags.
//
// # Legacy credentials
//
// MIKROTIK_HOST, MIKROTIK_USER and MIKROTIK_PASS are accepted as aliases of
// the ROUTER_* variables. When credentials are still missing, they are read
// from configuration/info.json under the same keys.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	session, err := router.Open(ctx, cfg.Router, logger)
package config
