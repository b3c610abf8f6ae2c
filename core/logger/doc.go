// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework used by server mode.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it to the
// log entry, so all logs of one HTTP request (and the reconciliation pass it triggered)
// can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: console (coloured levels) or json
//
// Logs are written to stderr so that report output on stdout stays clean.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Pass complete")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
