// Package database opens the optional SQL database that stores inventory
// snapshots.
//
// MySQL is the production driver; SQLite (a file path or ":memory:") serves
// local runs and tests. Connect verifies the connection with a ping bounded by
// TimeoutSeconds, so a misconfigured database fails fast instead of stalling
// a pass.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Snapshot database unavailable", zap.Error(err))
//	}
package database
